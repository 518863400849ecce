package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"saas-forecast/domain"
)

const (
	SheetName   = "Financial Model"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerColor    = "366092"
	maxColumnWidth = 50
)

// Exporter renders a forecast into a file.
type Exporter interface {
	Export(record domain.ModelRecord) ([]byte, error)
}

// ExcelExporter writes forecasts as xlsx workbooks.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// FileName is the download name for a model's workbook.
func FileName(modelID string) string {
	return fmt.Sprintf("financial_model_%s.xlsx", modelID)
}

// Export builds the workbook. Any failure is wrapped in domain.ErrExportFailed.
func (e *ExcelExporter) Export(record domain.ModelRecord) ([]byte, error) {
	data, err := e.export(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	return data, nil
}

func (e *ExcelExporter) export(record domain.ModelRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	header := Header(len(record.Projections))
	rows := BuildRows(record)

	widths := make([]int, len(header))

	for col, text := range header {
		if err := setCell(f, col+1, 1, text); err != nil {
			return nil, err
		}
		widths[col] = len(text)
	}

	for i, row := range rows {
		r := i + 2
		cells := append([]any{row.Metric, row.Unit}, row.Values...)
		for col, v := range cells {
			if err := setCell(f, col+1, r, v); err != nil {
				return nil, err
			}
			if n := len(fmt.Sprint(v)); col < len(widths) && n > widths[col] {
				widths[col] = n
			}
		}
	}

	if err := applyStyling(f, len(header), len(rows), widths); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(SheetName, cell, value)
}

func applyStyling(f *excelize.File, columns, dataRows int, widths []int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(columns, 1)
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return err
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(min(w+2, maxColumnWidth))); err != nil {
			return err
		}
	}

	if columns < 3 || dataRows == 0 {
		return nil
	}
	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	from, _ := excelize.CoordinatesToCellName(3, 2)
	to, _ := excelize.CoordinatesToCellName(columns, dataRows+1)
	return f.SetCellStyle(SheetName, from, to, centered)
}
