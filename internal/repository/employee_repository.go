package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/payroll-portal-api/internal/domain"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByIDAndPhone(ctx context.Context, id, phone string) (*domain.Employee, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Where(`"EmployeeID" = ?`, id).
		First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByIDAndPhone(ctx context.Context, id, phone string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Where(`"EmployeeID" = ? AND "MobileNumber" = ?`, id, phone).
		First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByPhone(ctx context.Context, phone string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Where(`"MobileNumber" = ?`, phone).
		First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order(`"EmployeeName" ASC`).
		Find(&employees).Error
	return employees, err
}
