package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/payroll-portal-api/internal/domain"
)

// PeriodSummary - сводка по одному расчётному периоду
type PeriodSummary struct {
	TotalEmployees int64   `gorm:"column:total_employees"`
	TotalNetSalary float64 `gorm:"column:total_net_salary"`
}

// PayslipRepository определяет интерфейс чтения расчётных листков
type PayslipRepository interface {
	ListPeriods(ctx context.Context) ([]domain.Period, error)
	ListPeriodsByEmployee(ctx context.Context, employeeID string) ([]domain.Period, error)
	PeriodSummary(ctx context.Context, year int, month string) (*PeriodSummary, error)
	ListByPeriod(ctx context.Context, year int, month string) ([]domain.Payslip, error)
	GetRaw(ctx context.Context, employeeID string, year int, month string) (map[string]string, error)
}

type payslipRepository struct {
	db *gorm.DB
}

// NewPayslipRepository создаёт новый экземпляр репозитория
func NewPayslipRepository(db *gorm.DB) PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	var periods []domain.Period
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT "PayYear" AS year, "PayMonth" AS month
		FROM "Payslips"
		ORDER BY year DESC, month DESC
	`).Scan(&periods).Error
	if err != nil {
		return nil, err
	}
	return dropBlankPeriods(periods), nil
}

func (r *payslipRepository) ListPeriodsByEmployee(ctx context.Context, employeeID string) ([]domain.Period, error) {
	var periods []domain.Period
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT "PayYear" AS year, "PayMonth" AS month
		FROM "Payslips"
		WHERE "EmployeeID" = ?
		ORDER BY year DESC, month DESC
	`, employeeID).Scan(&periods).Error
	if err != nil {
		return nil, err
	}
	return dropBlankPeriods(periods), nil
}

func (r *payslipRepository) PeriodSummary(ctx context.Context, year int, month string) (*PeriodSummary, error) {
	var summary PeriodSummary
	// чистая сумма хранится текстом, суммирование требует приведения
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT("EmployeeID") AS total_employees,
		       COALESCE(SUM(CAST(NULLIF("NetSalary", '') AS NUMERIC)), 0) AS total_net_salary
		FROM "Payslips"
		WHERE "PayYear" = ? AND "PayMonth" = ?
	`, year, month).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *payslipRepository) ListByPeriod(ctx context.Context, year int, month string) ([]domain.Payslip, error) {
	var payslips []domain.Payslip
	err := r.db.WithContext(ctx).
		Where(`"PayYear" = ? AND "PayMonth" = ?`, year, month).
		Order(`"EmployeeName" ASC`).
		Find(&payslips).Error
	return payslips, err
}

// GetRaw возвращает расчётный листок целиком, включая колонки, добавленные
// импортами после выпуска этого кода. Значения отдаются текстом.
func (r *payslipRepository) GetRaw(ctx context.Context, employeeID string, year int, month string) (map[string]string, error) {
	var row map[string]any
	err := r.db.WithContext(ctx).
		Table("Payslips").
		Where(`"EmployeeID" = ? AND "PayYear" = ? AND "PayMonth" = ?`, employeeID, year, month).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPayslipNotFound
		}
		return nil, err
	}
	return stringifyRow(row), nil
}

// dropBlankPeriods отбрасывает записи с пустым годом или месяцем
func dropBlankPeriods(periods []domain.Period) []domain.Period {
	result := make([]domain.Period, 0, len(periods))
	for _, p := range periods {
		if p.Year == 0 || p.Month == "" {
			continue
		}
		result = append(result, p)
	}
	return result
}

// stringifyRow приводит значения драйвера к тексту, NULL пропускается
func stringifyRow(row map[string]any) map[string]string {
	result := make(map[string]string, len(row))
	for column, value := range row {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			result[column] = v
		case []byte:
			result[column] = string(v)
		case int64:
			result[column] = strconv.FormatInt(v, 10)
		case float64:
			result[column] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			result[column] = strconv.FormatBool(v)
		default:
			continue
		}
	}
	return result
}
