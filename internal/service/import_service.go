package service

import (
	"context"
	"io"

	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/payroll"
	"github.com/payroll-portal-api/internal/repository"
	"github.com/payroll-portal-api/internal/xlsx"
)

// ImportService загружает месячную выгрузку зарплат: переводит заголовки,
// сверяет схему с файлом, нормализует строки и записывает их в две таблицы
type ImportService interface {
	Import(ctx context.Context, file io.Reader, year int, month string) (int, error)
}

type importService struct {
	employeeCatalog repository.SchemaCatalog
	payslipCatalog  repository.SchemaCatalog
	uploads         repository.UploadRepository
}

// NewImportService создаёт новый экземпляр сервиса
func NewImportService(
	employeeCatalog repository.SchemaCatalog,
	payslipCatalog repository.SchemaCatalog,
	uploads repository.UploadRepository,
) ImportService {
	return &importService{
		employeeCatalog: employeeCatalog,
		payslipCatalog:  payslipCatalog,
		uploads:         uploads,
	}
}

// Import обрабатывает файл за один проход в порядке строк листа.
// Сверка схемы завершается до первой записи; сами записи идут одной
// транзакцией - при ошибке на любой строке не фиксируется ничего.
// Повторная загрузка периода полностью замещает его листки.
func (s *importService) Import(ctx context.Context, file io.Reader, year int, month string) (int, error) {
	sheet, err := xlsx.Read(file)
	if err != nil {
		return 0, err
	}

	translated, err := payroll.TranslateHeaders(sheet.Headers)
	if err != nil {
		return 0, err
	}

	employeeColumns, payslipColumns, err := s.reconcileSchema(ctx, sheet.Headers, translated)
	if err != nil {
		return 0, err
	}

	processed := 0
	err = s.uploads.InTransaction(ctx, func(tx repository.UploadTx) error {
		if err := tx.DeletePayslipsForPeriod(year, month); err != nil {
			return err
		}

		for _, rawRow := range sheet.Rows {
			row := translateRow(rawRow, translated)

			// строки без кода сотрудника молча пропускаются
			if row["EmployeeID"] == "" {
				continue
			}
			row = payroll.NormalizeRow(row)

			// сотрудник записывается раньше листка, чтобы ссылка
			// листка на него всегда была разрешима
			if err := s.upsertEmployee(tx, row, employeeColumns); err != nil {
				return err
			}
			if err := s.insertPayslip(tx, row, payslipColumns, year, month); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return processed, nil
}

// reconcileSchema добавляет в таблицы колонки, которых требует файл,
// и возвращает каталоги после добавлений. Колонки никогда не удаляются.
func (s *importService) reconcileSchema(
	ctx context.Context,
	headers []string,
	translated map[string]string,
) (map[string]struct{}, map[string]struct{}, error) {
	employeeColumns, err := s.employeeCatalog.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}
	payslipColumns, err := s.payslipCatalog.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}

	// обход по списку заголовков, а не по map - порядок ALTER детерминирован
	for _, header := range headers {
		column, ok := translated[header]
		if !ok {
			continue
		}

		if payroll.IsEmployeeColumn(column) {
			if _, known := employeeColumns[column]; !known {
				if err := s.employeeCatalog.AddColumn(ctx, column); err != nil {
					return nil, nil, err
				}
			}
		} else {
			if _, known := payslipColumns[column]; !known {
				if err := s.payslipCatalog.AddColumn(ctx, column); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	// повторная интроспекция: записи строк сверяются с каталогами
	// после всех добавлений
	employeeColumns, err = s.employeeCatalog.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}
	payslipColumns, err = s.payslipCatalog.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}

	return employeeColumns, payslipColumns, nil
}

// upsertEmployee обновляет существующего сотрудника или создаёт нового.
// Обновляются только колонки, пришедшие в строке; код сотрудника
// не перезаписывается никогда.
func (s *importService) upsertEmployee(
	tx repository.UploadTx,
	row map[string]string,
	employeeColumns map[string]struct{},
) error {
	fields := recognizedFields(row, employeeColumns)
	employeeID := row["EmployeeID"]

	exists, err := tx.EmployeeExists(employeeID)
	if err != nil {
		return err
	}

	if exists {
		if len(fields) > 1 {
			delete(fields, "EmployeeID")
			return tx.UpdateEmployee(employeeID, fields)
		}
		return nil
	}

	if _, ok := fields["Role"]; !ok {
		fields["Role"] = domain.RoleEmployee
	}
	return tx.InsertEmployee(fields)
}

// insertPayslip вставляет листок безусловно: листки периода уже удалены
// в начале транзакции
func (s *importService) insertPayslip(
	tx repository.UploadTx,
	row map[string]string,
	payslipColumns map[string]struct{},
	year int,
	month string,
) error {
	fields := recognizedFields(row, payslipColumns)
	fields["PayYear"] = year
	fields["PayMonth"] = month
	return tx.InsertPayslip(fields)
}

// translateRow перекладывает значения строки под канонические имена колонок
func translateRow(rawRow map[string]string, translated map[string]string) map[string]string {
	row := make(map[string]string, len(rawRow))
	for header, value := range rawRow {
		if column, ok := translated[header]; ok {
			row[column] = value
		}
	}
	return row
}

// recognizedFields отбирает колонки строки, известные каталогу таблицы.
// Каталоги проверяются независимо: колонка, известная обеим таблицам
// (например EmployeeID), попадает в обе.
func recognizedFields(row map[string]string, columns map[string]struct{}) map[string]any {
	fields := make(map[string]any, len(row))
	for column, value := range row {
		if _, ok := columns[column]; ok {
			fields[column] = value
		}
	}
	return fields
}
