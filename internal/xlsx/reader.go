// Package xlsx читает загруженные выгрузки Excel: первая строка листа -
// заголовки, остальные - данные. Отсутствующие ячейки отдаются пустым
// текстом, а не признаком отсутствия.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/payroll-portal-api/internal/domain"
)

// Sheet - построчное представление первого листа книги
type Sheet struct {
	Headers []string
	Rows    []map[string]string
}

// Read разбирает книгу из потока и возвращает первый лист.
// Порядок строк сохраняется.
func Read(r io.Reader) (*Sheet, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrEmptySheet
	}

	headers := rows[0]
	sheet := &Sheet{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, values)
	}

	return sheet, nil
}
