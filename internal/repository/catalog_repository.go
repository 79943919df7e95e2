package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/payroll-portal-api/internal/domain"
)

// SchemaCatalog - "открытая схема" одной таблицы: множество живых колонок
// и возможность его расширять. Колонки только добавляются, тип всегда
// остаётся разрешающим текстовым.
type SchemaCatalog interface {
	Columns(ctx context.Context) (map[string]struct{}, error)
	AddColumn(ctx context.Context, name string) error
}

type tableCatalog struct {
	db         *gorm.DB
	model      any
	table      string
	columnType string
}

// NewEmployeeCatalog создаёт каталог колонок таблицы сотрудников
func NewEmployeeCatalog(db *gorm.DB) SchemaCatalog {
	return &tableCatalog{
		db:         db,
		model:      &domain.Employee{},
		table:      "Employees",
		columnType: "VARCHAR(255)",
	}
}

// NewPayslipCatalog создаёт каталог колонок таблицы расчётных листков
func NewPayslipCatalog(db *gorm.DB) SchemaCatalog {
	return &tableCatalog{
		db:         db,
		model:      &domain.Payslip{},
		table:      "Payslips",
		columnType: "TEXT",
	}
}

// Columns возвращает фактические колонки таблицы из БД.
// Интроспекция идёт через мигратор, поэтому добавленные в этой же сессии
// колонки видны сразу.
func (c *tableCatalog) Columns(ctx context.Context) (map[string]struct{}, error) {
	columnTypes, err := c.db.WithContext(ctx).Migrator().ColumnTypes(c.model)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", c.table, err)
	}

	columns := make(map[string]struct{}, len(columnTypes))
	for _, columnType := range columnTypes {
		columns[columnType.Name()] = struct{}{}
	}
	return columns, nil
}

// AddColumn добавляет новую nullable-колонку
func (c *tableCatalog) AddColumn(ctx context.Context, name string) error {
	sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s NULL",
		quoteIdent(c.table), quoteIdent(name), c.columnType)
	if err := c.db.WithContext(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("add column %s to %s: %w", name, c.table, err)
	}
	return nil
}

// quoteIdent экранирует идентификатор для SQL.
// Имена колонок приходят из заголовков файла и не могут быть параметрами.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
