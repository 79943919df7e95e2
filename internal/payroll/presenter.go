package payroll

import "github.com/shopspring/decimal"

// nonSalaryColumns - колонки, не являющиеся суммами начислений/удержаний:
// идентификаторы, организационные атрибуты, период и итоги.
// Исключаются из разбивки по корзинам.
var nonSalaryColumns = map[string]struct{}{
	"PayslipID": {}, "EmployeeID": {}, "EmployeeName": {}, "NationalID": {},
	"Role": {}, "JobTitle": {}, "CostCenterCode": {}, "CostCenterName": {},
	"Department": {}, "MobileNumber": {}, "PayMonth": {}, "PayYear": {},
	"TotalAllowances": {}, "TotalEntitlements": {}, "TotalDeductions": {},
	"NetSalary": {}, "PreviousInsurancePeriod": {},
}

// Breakdown - расчётный листок, подготовленный к показу: суммы разнесены
// по корзинам начислений и удержаний, итоги пересчитаны.
type Breakdown struct {
	Raw               map[string]string          `json:"raw"`
	Entitlements      map[string]decimal.Decimal `json:"entitlements"`
	Deductions        map[string]decimal.Decimal `json:"deductions"`
	TotalEntitlements decimal.Decimal            `json:"total_entitlements"`
	TotalDeductions   decimal.Decimal            `json:"total_deductions"`
	NetSalary         decimal.Decimal            `json:"net_salary"`
}

// Present раскладывает сохранённый расчётный листок для отображения.
// Итоги читаются как числа (пустое значение - ноль), чистая сумма всегда
// пересчитывается как сумма двух итогов: удержания хранятся неположительными,
// поэтому сложение даёт вычитание. Каждая прочая колонка при успешном
// числовом разборе попадает ровно в одну корзину: положительная - в
// начисления, отрицательная - в удержания по модулю; ноль и нечисловые
// значения пропускаются.
func Present(raw map[string]string) Breakdown {
	totalEntitlements := parseAmount(raw["TotalEntitlements"])
	totalDeductions := parseAmount(raw["TotalDeductions"])
	netSalary := totalEntitlements.Add(totalDeductions)

	breakdown := Breakdown{
		Raw:               make(map[string]string, len(raw)),
		Entitlements:      make(map[string]decimal.Decimal),
		Deductions:        make(map[string]decimal.Decimal),
		TotalEntitlements: totalEntitlements,
		TotalDeductions:   totalDeductions,
		NetSalary:         netSalary,
	}

	for column, value := range raw {
		breakdown.Raw[column] = value
	}
	// сохранённый в файле "صافي" игнорируется, показываем пересчитанный
	breakdown.Raw["NetSalary"] = netSalary.String()

	for column, value := range raw {
		if _, excluded := nonSalaryColumns[column]; excluded {
			continue
		}

		amount, err := decimal.NewFromString(value)
		if err != nil {
			continue
		}

		switch {
		case amount.IsPositive():
			breakdown.Entitlements[Label(column)] = amount
		case amount.IsNegative():
			breakdown.Deductions[Label(column)] = amount.Abs()
		}
	}

	return breakdown
}

// parseAmount разбирает сумму, трактуя пустые и нечисловые значения как ноль
func parseAmount(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
