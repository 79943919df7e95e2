package auth

import (
	"context"
	"log/slog"
)

// Sender доставляет одноразовый код сотруднику
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// IdentityVerifier проверяет токен внешнего провайдера идентификации и
// возвращает подтверждённый номер телефона. Сам токен портал не разбирает.
type IdentityVerifier interface {
	VerifiedPhone(ctx context.Context, idToken string) (string, error)
}

// ConsoleSender пишет код в лог вместо отправки SMS.
// Используется в разработке и в тестовых стендах без SMS-шлюза.
type ConsoleSender struct {
	Logger *slog.Logger
}

// Send логирует код
func (s *ConsoleSender) Send(_ context.Context, phone, code string) error {
	s.Logger.Info("OTP issued",
		slog.String("phone", phone),
		slog.String("code", code),
	)
	return nil
}
