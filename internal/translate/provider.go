package translate

import (
	"context"

	"github.com/bregydoc/gtranslate"
)

// Provider performs the actual translation call. Latency and failure
// behavior are entirely up to the implementation.
type Provider interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GoogleProvider translates through the public Google Translate endpoint.
type GoogleProvider struct {
	from string
	to   string
}

// NewGoogleProvider creates a provider for the given ISO 639-1 language
// pair. No authentication is required.
func NewGoogleProvider(sourceLang, targetLang string) *GoogleProvider {
	return &GoogleProvider{
		from: sourceLang,
		to:   targetLang,
	}
}

func (p *GoogleProvider) Translate(_ context.Context, text string) (string, error) {
	return gtranslate.TranslateWithParams(
		text,
		gtranslate.TranslationParams{
			From: p.from,
			To:   p.to,
		},
	)
}
