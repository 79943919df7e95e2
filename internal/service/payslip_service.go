package service

import (
	"context"

	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/payroll"
	"github.com/payroll-portal-api/internal/repository"
)

// YearPeriods - месяцы одного года, от новых к старым
type YearPeriods struct {
	Year   int      `json:"year"`
	Months []string `json:"months"`
}

// PeriodDetails - сводка и построчный список листков периода
type PeriodDetails struct {
	Summary  repository.PeriodSummary
	Payslips []domain.Payslip
}

// PayslipService определяет интерфейс бизнес-логики расчётных листков
type PayslipService interface {
	Overview(ctx context.Context) ([]YearPeriods, error)
	PeriodDetails(ctx context.Context, year int, month string) (*PeriodDetails, error)
	MyPeriods(ctx context.Context, employeeID string) ([]YearPeriods, error)
	Detail(ctx context.Context, employeeID string, year int, month string) (*payroll.Breakdown, error)
}

type payslipService struct {
	payslips repository.PayslipRepository
}

// NewPayslipService создаёт новый экземпляр сервиса
func NewPayslipService(payslips repository.PayslipRepository) PayslipService {
	return &payslipService{payslips: payslips}
}

func (s *payslipService) Overview(ctx context.Context) ([]YearPeriods, error) {
	periods, err := s.payslips.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	return groupByYear(periods), nil
}

func (s *payslipService) PeriodDetails(ctx context.Context, year int, month string) (*PeriodDetails, error) {
	summary, err := s.payslips.PeriodSummary(ctx, year, month)
	if err != nil {
		return nil, err
	}

	payslips, err := s.payslips.ListByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if len(payslips) == 0 {
		return nil, domain.ErrPayslipNotFound
	}

	return &PeriodDetails{
		Summary:  *summary,
		Payslips: payslips,
	}, nil
}

func (s *payslipService) MyPeriods(ctx context.Context, employeeID string) ([]YearPeriods, error) {
	periods, err := s.payslips.ListPeriodsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return groupByYear(periods), nil
}

// Detail разворачивает один сохранённый листок в корзины
// начислений и удержаний
func (s *payslipService) Detail(ctx context.Context, employeeID string, year int, month string) (*payroll.Breakdown, error) {
	raw, err := s.payslips.GetRaw(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	breakdown := payroll.Present(raw)
	return &breakdown, nil
}

// groupByYear сворачивает отсортированный список периодов в годы с месяцами,
// сохраняя порядок
func groupByYear(periods []domain.Period) []YearPeriods {
	var result []YearPeriods
	for _, p := range periods {
		if len(result) > 0 && result[len(result)-1].Year == p.Year {
			last := &result[len(result)-1]
			last.Months = append(last.Months, p.Month)
			continue
		}
		result = append(result, YearPeriods{Year: p.Year, Months: []string{p.Month}})
	}
	return result
}
