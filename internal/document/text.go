package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// TextAdapter translates plain text files. The whole file body is a
// single translation unit; it is not split into lines. Output is always
// UTF-8.
type TextAdapter struct{}

func (TextAdapter) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}

	content, encName, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	log.Debug("Decoded %s as %s", inputPath, encName)

	translated := content
	if strings.TrimSpace(content) != "" {
		translated = svc.Translate(ctx, content)
	}

	if err := os.WriteFile(outputPath, []byte(translated), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}
	return nil
}
