package translate

import (
	"fmt"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// scriptByLanguage maps ISO 639-1 codes to the Unicode script their text
// is written in, for languages whose script does not overlap with the
// usual target scripts. Languages not listed here fall back to statistical
// detection.
var scriptByLanguage = map[string]*unicode.RangeTable{
	"am": unicode.Ethiopic,
	"ar": unicode.Arabic,
	"bg": unicode.Cyrillic,
	"bn": unicode.Bengali,
	"el": unicode.Greek,
	"he": unicode.Hebrew,
	"hi": unicode.Devanagari,
	"hy": unicode.Armenian,
	"ka": unicode.Georgian,
	"km": unicode.Khmer,
	"ko": unicode.Hangul,
	"lo": unicode.Lao,
	"mk": unicode.Cyrillic,
	"my": unicode.Myanmar,
	"ne": unicode.Devanagari,
	"ru": unicode.Cyrillic,
	"sr": unicode.Cyrillic,
	"ta": unicode.Tamil,
	"th": unicode.Thai,
	"uk": unicode.Cyrillic,
}

// ScriptGate decides whether a string is presumed to be in the source
// language and therefore worth a provider call. Text that fails the gate
// is treated as already in the target language.
//
// When a Unicode script is known for the source language (or forced via
// script name), the gate passes any string containing at least one rune of
// that script. Otherwise the gate detects the dominant language of the
// string and compares it against the source language.
type ScriptGate struct {
	table     *unicode.RangeTable
	sourceISO string
}

// NewScriptGate builds a gate for the given source language. A non-empty
// scriptName forces a specific script from unicode.Scripts (e.g. "Thai");
// an unknown name is an error.
func NewScriptGate(sourceLang, scriptName string) (ScriptGate, error) {
	if scriptName != "" {
		table, ok := unicode.Scripts[scriptName]
		if !ok {
			return ScriptGate{}, fmt.Errorf("unknown Unicode script: %s", scriptName)
		}
		return ScriptGate{table: table, sourceISO: sourceLang}, nil
	}

	return ScriptGate{
		table:     scriptByLanguage[sourceLang],
		sourceISO: sourceLang,
	}, nil
}

// ShouldTranslate reports whether text looks like source-language content.
func (g ScriptGate) ShouldTranslate(text string) bool {
	if g.table != nil {
		for _, r := range text {
			if unicode.Is(g.table, r) {
				return true
			}
		}
		return false
	}

	return whatlanggo.DetectLang(text).Iso6391() == g.sourceISO
}
