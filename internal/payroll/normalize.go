package payroll

// NormalizeRow готовит строку выгрузки к записи: пустые значения
// отбрасываются (не хранятся пустыми строками), номер телефона приводится
// к каноническому формату. Исходная строка не модифицируется.
func NormalizeRow(row map[string]string) map[string]string {
	cleaned := make(map[string]string, len(row))
	for column, value := range row {
		if value == "" {
			continue
		}
		if column == "MobileNumber" {
			value = CanonicalPhone(value)
		}
		cleaned[column] = value
	}
	return cleaned
}
