package document

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrDecode marks input that none of the fallback encodings could decode.
var ErrDecode = errors.New("could not decode file with any supported encoding")

type fallbackEncoding struct {
	name string
	enc  encoding.Encoding
}

// fallbackEncodings is tried in order; the first one that decodes the
// input without error wins. ISO 8859-1 accepts any byte sequence, so it
// terminates the chain for non-UTF-8 input.
var fallbackEncodings = []fallbackEncoding{
	{"UTF-8", unicode.UTF8},
	{"ISO 8859-1", charmap.ISO8859_1},
	{"Windows-1252", charmap.Windows1252},
}

// Decode converts raw file content to a string using the encoding
// fallback chain, returning the decoded text and the name of the encoding
// used.
func Decode(data []byte) (string, string, error) {
	for _, fe := range fallbackEncodings {
		if fe.enc == unicode.UTF8 {
			if utf8.Valid(data) {
				return string(data), fe.name, nil
			}
			continue
		}
		decoded, err := fe.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), fe.name, nil
	}
	return "", "", fmt.Errorf("%w", ErrDecode)
}
