package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// PDFAdapter extracts per-page text and resolves it through the
// translation pipeline, but copies the pages through unchanged: faithful
// in-place text replacement is not feasible with structural PDF tooling,
// so the output preserves the original layout while the translations land
// in the shared cache.
type PDFAdapter struct{}

func (PDFAdapter) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	f, reader, err := pdf.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn("Failed to extract text from page %d of %s: %v", i, inputPath, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		svc.Translate(ctx, text)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	log.Warn("PDF output preserves the original page content; text replacement is limited for %s", inputPath)
	return nil
}
