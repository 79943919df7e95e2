package payroll

import (
	"fmt"
	"strings"

	"github.com/payroll-portal-api/internal/domain"
)

// columnMapping - неизменяемый словарь: арабский заголовок выгрузки ->
// каноническое имя колонки в БД. Заполняется один раз, обратный индекс
// строится при инициализации пакета.
var columnMapping = map[string]string{
	"رقم الموظف":                "EmployeeID",
	"الاسم":                     "EmployeeName",
	"الرقم القومي":              "NationalID",
	"الوظيفة":                   "JobTitle",
	"كود مركز التكلفة":          "CostCenterCode",
	"مركز التكلفة":              "CostCenterName",
	"الإدارة":                   "Department",
	"رقم الموبايل":              "MobileNumber",
	"مرتب أساسي":                "BasicSalary",
	"بدل تمثيل":                 "RepresentationAllowance",
	"بدل إنتقال":                "TransportationAllowance",
	"بدل ترقية":                 "PromotionAllowance",
	"بدل سيارة":                 "CarAllowance",
	"بدل نول":                   "NolAllowance",
	"بدل انتاج":                 "ProductionAllowance",
	"علاوات خاصة":               "SpecialAllowances",
	"بدل طبيعة":                 "NatureOfWorkAllowance",
	"بدل غذاء":                  "FoodAllowance",
	"غلاء معيشة":                "CostOfLiving",
	"جهد":                       "EffortAllowance",
	"بدل إنتظام":                "RegularityAllowance",
	"اجمالي بدلات":              "TotalAllowances",
	"إضافي":                     "Overtime",
	"صافي الحوافز":              "NetIncentives",
	"بدل الباركود":              "BarcodeAllowance",
	"بدل جودة":                  "QualityAllowance",
	"حافز النسيج":               "FabricIncentive",
	"حافز استثنائ":              "ExceptionalIncentive",
	"حافز إداري":                "AdministrativeIncentive",
	"حافز عمليات":               "OperationsIncentive",
	"بدل سكن":                   "HousingAllowance",
	"استحقاقات إخري":            "OtherEntitlements",
	"عمولة":                     "Commission",
	"حافز انتاج":                "ProductionIncentive",
	"الإسترداد":                 "Reimbursement",
	"حافز كفاءة":                "EfficiencyIncentive",
	"بدل ملبس":                  "ClothingAllowance",
	"مكافئة":                    "Bonus",
	"إجمالى الاستحفافات":        "TotalEntitlements",
	"حصة الموظف من التامينات":   "EmployeeInsuranceShare",
	"مدة تامينات سابقة":         "PreviousInsurancePeriod",
	"كسب عمل":                   "WorkEarnings",
	"غياب":                      "AbsenceDeduction",
	"جزاء راتب":                 "SalaryPenalty",
	"سلفة":                      "AdvancePayment",
	"غرامة":                     "FineDeduction",
	"كهرباء":                    "ElectricityDeduction",
	"تليفون":                    "PhoneDeduction",
	"مياه":                      "WaterDeduction",
	"فرق ايام":                  "DaysDifferenceDeduction",
	"خصومات اخري":               "OtherDeductions",
	"كارت بريميوم":              "PremiumCardDeduction",
	"ص.ت.الشهداء":               "MartyrsFundDeduction",
	"خزانه":                     "TreasuryDeduction",
	"إجمالى الاستقطاعات":        "TotalDeductions",
	"الصافي":                    "NetSalary",
}

// labelByColumn - обратный индекс для отображения: колонка -> заголовок
var labelByColumn = func() map[string]string {
	inverse := make(map[string]string, len(columnMapping))
	for label, column := range columnMapping {
		inverse[column] = label
	}
	return inverse
}()

// TranslateHeaders переводит заголовки листа в канонические имена колонок.
// Известные заголовки берутся из словаря, неизвестные превращаются в
// безопасный идентификатор - так в систему попадают новые поля.
// Два разных заголовка не могут дать одно и то же имя.
func TranslateHeaders(headers []string) (map[string]string, error) {
	translated := make(map[string]string, len(headers))
	seen := make(map[string]string, len(headers))

	for _, header := range headers {
		if header == "" {
			continue
		}

		column, ok := columnMapping[header]
		if !ok {
			column = SanitizeHeader(header)
		}

		if other, dup := seen[column]; dup && other != header {
			return nil, fmt.Errorf("%w: %q and %q -> %q",
				domain.ErrDuplicateColumn, other, header, column)
		}
		seen[column] = header
		translated[header] = column
	}

	return translated, nil
}

// SanitizeHeader превращает произвольный заголовок в имя колонки:
// обрезает края и заменяет пробелы подчёркиваниями
func SanitizeHeader(header string) string {
	return strings.ReplaceAll(strings.TrimSpace(header), " ", "_")
}

// Label возвращает человекочитаемую подпись для канонической колонки.
// Для колонок вне словаря подписью служит само имя.
func Label(column string) string {
	if label, ok := labelByColumn[column]; ok {
		return label
	}
	return column
}
