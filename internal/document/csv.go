package document

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// CSVAdapter translates delimited text files. Column headers are
// translated first, each through its own service call; the data cells are
// pooled into one whole-table batch. Row and column positions are
// preserved and the output is re-encoded as UTF-8 whatever the input
// encoding was.
type CSVAdapter struct{}

func (CSVAdapter) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read CSV file: %w", err)
	}

	content, encName, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	log.Debug("Decoded %s as %s", inputPath, encName)

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %w", err)
	}

	if len(records) > 0 {
		// Headers first, one call site per column.
		headers := records[0]
		for i, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			headers[i] = svc.Translate(ctx, header)
		}

		// All data cells share one batch.
		batch := translate.NewBatch(svc)
		for _, record := range records[1:] {
			for _, cell := range record {
				batch.AddText(cell)
			}
		}
		res := batch.Resolve(ctx)
		for _, record := range records[1:] {
			for i, cell := range record {
				record[i] = res.ApplyText(cell)
			}
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return out.Close()
}
