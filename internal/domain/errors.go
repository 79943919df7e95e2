package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrPayslipNotFound       = errors.New("payslip not found for requested period")
	ErrInvalidCredentials    = errors.New("employee id or mobile number is incorrect")
	ErrInvalidOTP            = errors.New("verification code is invalid or expired")
	ErrSessionExpired        = errors.New("session is invalid or expired")
	ErrForbidden             = errors.New("operation requires administrator role")
	ErrIdentityLoginDisabled = errors.New("identity provider login is not configured")
	ErrDuplicateColumn       = errors.New("two spreadsheet headers resolve to the same column")
	ErrEmptySheet            = errors.New("spreadsheet has no data rows")
)
