package domain

// Роли сотрудников в системе
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Employee представляет базовую карточку сотрудника.
// Таблица открытая: импорты могут добавлять новые текстовые колонки,
// здесь описано только фиксированное ядро.
type Employee struct {
	EmployeeID     string `json:"employee_id" gorm:"column:EmployeeID;primaryKey"`
	EmployeeName   string `json:"employee_name" gorm:"column:EmployeeName"`
	NationalID     string `json:"national_id" gorm:"column:NationalID"`
	JobTitle       string `json:"job_title" gorm:"column:JobTitle"`
	CostCenterCode string `json:"cost_center_code" gorm:"column:CostCenterCode"`
	CostCenterName string `json:"cost_center_name" gorm:"column:CostCenterName"`
	Department     string `json:"department" gorm:"column:Department"`
	MobileNumber   string `json:"mobile_number" gorm:"column:MobileNumber"`
	Role           string `json:"role" gorm:"column:Role"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "Employees"
}

// Payslip представляет ядро расчётного листка. Суммы хранятся текстом:
// схема расширяется произвольными колонками из будущих выгрузок,
// поэтому тип намеренно не сужается.
type Payslip struct {
	PayslipID         int64  `json:"payslip_id" gorm:"column:PayslipID;primaryKey;autoIncrement"`
	EmployeeID        string `json:"employee_id" gorm:"column:EmployeeID"`
	EmployeeName      string `json:"employee_name" gorm:"column:EmployeeName"`
	PayYear           int    `json:"pay_year" gorm:"column:PayYear"`
	PayMonth          string `json:"pay_month" gorm:"column:PayMonth"`
	BasicSalary       string `json:"basic_salary" gorm:"column:BasicSalary"`
	TotalEntitlements string `json:"total_entitlements" gorm:"column:TotalEntitlements"`
	TotalDeductions   string `json:"total_deductions" gorm:"column:TotalDeductions"`
	NetSalary         string `json:"net_salary" gorm:"column:NetSalary"`
}

// TableName задаёт имя таблицы для GORM
func (Payslip) TableName() string {
	return "Payslips"
}

// Period идентифицирует один расчётный цикл.
// Месяц хранится как свободный текст и сравнивается буквально.
type Period struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
}

// Principal - аутентифицированный субъект запроса.
// Передаётся явно через context вместо неявного состояния сессии.
type Principal struct {
	EmployeeID string
	Role       string
}

// IsAdmin сообщает, имеет ли субъект права администратора
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
