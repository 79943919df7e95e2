package repository

import (
	"context"

	"gorm.io/gorm"
)

// UploadTx - операции записи одного импорта. Все вызовы идут в рамках
// одной транзакции: либо фиксируется весь файл, либо ничего.
// Наборы колонок в строках произвольные, поэтому запись идёт через map,
// а не через фиксированные модели.
type UploadTx interface {
	DeletePayslipsForPeriod(year int, month string) error
	EmployeeExists(id string) (bool, error)
	InsertEmployee(fields map[string]any) error
	UpdateEmployee(id string, fields map[string]any) error
	InsertPayslip(fields map[string]any) error
}

// UploadRepository исполняет импорт в транзакции
type UploadRepository interface {
	InTransaction(ctx context.Context, fn func(tx UploadTx) error) error
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository создаёт новый экземпляр репозитория
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) InTransaction(ctx context.Context, fn func(tx UploadTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&uploadTx{db: tx})
	})
}

type uploadTx struct {
	db *gorm.DB
}

func (t *uploadTx) DeletePayslipsForPeriod(year int, month string) error {
	return t.db.
		Exec(`DELETE FROM "Payslips" WHERE "PayYear" = ? AND "PayMonth" = ?`, year, month).
		Error
}

func (t *uploadTx) EmployeeExists(id string) (bool, error) {
	var count int64
	err := t.db.
		Table("Employees").
		Where(`"EmployeeID" = ?`, id).
		Count(&count).Error
	return count > 0, err
}

func (t *uploadTx) InsertEmployee(fields map[string]any) error {
	return t.db.Table("Employees").Create(fields).Error
}

func (t *uploadTx) UpdateEmployee(id string, fields map[string]any) error {
	return t.db.
		Table("Employees").
		Where(`"EmployeeID" = ?`, id).
		Updates(fields).Error
}

func (t *uploadTx) InsertPayslip(fields map[string]any) error {
	return t.db.Table("Payslips").Create(fields).Error
}
