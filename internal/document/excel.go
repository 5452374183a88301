package document

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// ExcelAdapter translates spreadsheet workbooks. Unique string values are
// pooled across ALL sheets, together with the sheet names, into a single
// batch before anything is rewritten, so a value repeated on every sheet
// costs one provider call. Cells are edited in place: numbers, dates,
// formulas, styles and positions pass through untouched.
type ExcelAdapter struct{}

// stringCell locates one string-typed cell to rewrite.
type stringCell struct {
	sheet string
	axis  string
	value string
}

func (ExcelAdapter) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	workbook, err := excelize.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	batch := translate.NewBatch(svc)
	var cells []stringCell

	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		for ri, row := range rows {
			for ci, value := range row {
				if value == "" {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					return fmt.Errorf("failed to resolve cell position: %w", err)
				}
				cellType, err := workbook.GetCellType(sheet, axis)
				if err != nil {
					return fmt.Errorf("failed to read cell type %s!%s: %w", sheet, axis, err)
				}
				if cellType != excelize.CellTypeSharedString && cellType != excelize.CellTypeInlineString {
					continue
				}
				batch.AddText(value)
				cells = append(cells, stringCell{sheet: sheet, axis: axis, value: value})
			}
		}
		// Sheet names join the same workbook-wide pool.
		batch.AddText(sheet)
	}

	log.Debug("Workbook %s: %d string cells, %d distinct values", inputPath, len(cells), batch.Size())
	res := batch.Resolve(ctx)

	for _, cell := range cells {
		translated := res.ApplyText(cell.value)
		if translated == cell.value {
			continue
		}
		if err := workbook.SetCellStr(cell.sheet, cell.axis, translated); err != nil {
			return fmt.Errorf("failed to rewrite cell %s!%s: %w", cell.sheet, cell.axis, err)
		}
	}

	for _, sheet := range sheets {
		translated := res.ApplyText(sheet)
		if translated == sheet {
			continue
		}
		if err := workbook.SetSheetName(sheet, translated); err != nil {
			return fmt.Errorf("failed to rename sheet %s: %w", sheet, err)
		}
	}

	if err := workbook.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
