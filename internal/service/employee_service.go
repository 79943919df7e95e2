package service

import (
	"context"

	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
}

type employeeService struct {
	empRepo repository.EmployeeRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{empRepo: empRepo}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.empRepo.List(ctx)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}
