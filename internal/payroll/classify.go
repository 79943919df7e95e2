package payroll

import "strings"

// employeeBaseColumns - фиксированный набор базовых колонок сотрудника.
// Колонка считается "сотрудниковой", если содержит любое из этих имён
// как подстроку. Эвристика намеренно нестрогая и сохранена из исходной
// системы; см. DESIGN.md.
var employeeBaseColumns = []string{
	"EmployeeID", "EmployeeName", "NationalID", "JobTitle",
	"CostCenterCode", "CostCenterName", "Department", "MobileNumber", "Role",
}

// IsEmployeeColumn классифицирует колонку: true - область сотрудника,
// false - область расчётного листка
func IsEmployeeColumn(column string) bool {
	for _, base := range employeeBaseColumns {
		if strings.Contains(column, base) {
			return true
		}
	}
	return false
}
