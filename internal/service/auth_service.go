package service

import (
	"context"
	"strings"

	"github.com/payroll-portal-api/internal/auth"
	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/payroll"
	"github.com/payroll-portal-api/internal/repository"
)

// AuthService определяет интерфейс входа по одноразовому коду
// и по токену внешнего провайдера идентификации
type AuthService interface {
	RequestOTP(ctx context.Context, employeeID, phone string) error
	VerifyOTP(ctx context.Context, employeeID, code string) (*auth.Session, error)
	LoginWithToken(ctx context.Context, idToken string) (*auth.Session, error)
	Logout(token string)
}

type authService struct {
	employees repository.EmployeeRepository
	otps      *auth.OTPStore
	sessions  *auth.SessionStore
	sender    auth.Sender
	verifier  auth.IdentityVerifier // nil, если провайдер не настроен
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(
	employees repository.EmployeeRepository,
	otps *auth.OTPStore,
	sessions *auth.SessionStore,
	sender auth.Sender,
	verifier auth.IdentityVerifier,
) AuthService {
	return &authService{
		employees: employees,
		otps:      otps,
		sessions:  sessions,
		sender:    sender,
		verifier:  verifier,
	}
}

// RequestOTP выдаёт одноразовый код, если пара (код сотрудника, телефон)
// есть в базе. Телефон из формы приводится к каноническому формату
// перед сравнением.
func (s *authService) RequestOTP(ctx context.Context, employeeID, phone string) error {
	phone = payroll.CanonicalPhone(phone)

	emp, err := s.employees.GetByIDAndPhone(ctx, employeeID, phone)
	if err != nil {
		if err == domain.ErrEmployeeNotFound {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	code := s.otps.Issue(emp.EmployeeID)
	return s.sender.Send(ctx, emp.MobileNumber, code)
}

// VerifyOTP проверяет код и открывает сессию.
// Роль берётся из карточки сотрудника; пустая роль означает рядового.
func (s *authService) VerifyOTP(ctx context.Context, employeeID, code string) (*auth.Session, error) {
	if !s.otps.Verify(employeeID, code) {
		return nil, domain.ErrInvalidOTP
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	session := s.sessions.Create(emp.EmployeeID, roleOf(emp))
	return &session, nil
}

// LoginWithToken входит по токену внешнего провайдера: токен меняется на
// подтверждённый номер телефона, сотрудник ищется по номеру
func (s *authService) LoginWithToken(ctx context.Context, idToken string) (*auth.Session, error) {
	if s.verifier == nil {
		return nil, domain.ErrIdentityLoginDisabled
	}

	phone, err := s.verifier.VerifiedPhone(ctx, idToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	emp, err := s.employees.GetByPhone(ctx, phone)
	if err != nil {
		if err == domain.ErrEmployeeNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	session := s.sessions.Create(emp.EmployeeID, roleOf(emp))
	return &session, nil
}

// Logout завершает сессию
func (s *authService) Logout(token string) {
	s.sessions.Delete(token)
}

func roleOf(emp *domain.Employee) string {
	role := strings.ToLower(strings.TrimSpace(emp.Role))
	if role == "" {
		return domain.RoleEmployee
	}
	return role
}
