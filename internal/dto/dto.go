package dto

import "github.com/shopspring/decimal"

// RequestOTPRequest - запрос одноразового кода
type RequestOTPRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// VerifyOTPRequest - проверка одноразового кода
type VerifyOTPRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
}

// TokenLoginRequest - вход по токену внешнего провайдера идентификации
type TokenLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginResponse - ответ успешного входа
type LoginResponse struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

// MessageResponse - информационное сообщение
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse - итог загрузки выгрузки
type UploadResponse struct {
	Processed int `json:"processed"`
}

// EmployeeResponse - строка списка сотрудников
type EmployeeResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	NationalID   string `json:"national_id"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
}

// PeriodSummaryResponse - сводка расчётного периода
type PeriodSummaryResponse struct {
	Year           int     `json:"year"`
	Month          string  `json:"month"`
	TotalEmployees int64   `json:"total_employees"`
	TotalNetSalary float64 `json:"total_net_salary"`
}

// PayslipRowResponse - строка периода в списке администратора
type PayslipRowResponse struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	BasicSalary       string `json:"basic_salary"`
	TotalEntitlements string `json:"total_entitlements"`
	TotalDeductions   string `json:"total_deductions"`
	NetSalary         string `json:"net_salary"`
}

// PeriodDetailsResponse - детализация периода для администратора
type PeriodDetailsResponse struct {
	Summary  PeriodSummaryResponse `json:"summary"`
	Payslips []PayslipRowResponse  `json:"payslips"`
}

// PayslipDetailResponse - листок сотрудника, разнесённый по корзинам.
// Подписи корзин - человекочитаемые заголовки из словаря перевода.
type PayslipDetailResponse struct {
	Entitlements      map[string]decimal.Decimal `json:"entitlements"`
	Deductions        map[string]decimal.Decimal `json:"deductions"`
	TotalEntitlements decimal.Decimal            `json:"total_entitlements"`
	TotalDeductions   decimal.Decimal            `json:"total_deductions"`
	NetSalary         decimal.Decimal            `json:"net_salary"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
