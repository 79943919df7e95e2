// Package auth содержит механику входа: одноразовые коды, сессии и
// интерфейсы внешних систем (доставка SMS, проверка токенов провайдера).
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/payroll-portal-api/internal/domain"
)

// Session - выданная после входа сессия
type Session struct {
	Token      string
	EmployeeID string
	Role       string
	ExpiresAt  time.Time
}

// SessionStore хранит активные сессии в памяти.
// Портал внутренний и однопроцессный, внешнее хранилище не требуется.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewSessionStore создаёт хранилище сессий с заданным временем жизни
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create выдаёт новую сессию для сотрудника
func (s *SessionStore) Create(employeeID, role string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := Session{
		Token:      uuid.NewString(),
		EmployeeID: employeeID,
		Role:       role,
		ExpiresAt:  s.now().Add(s.ttl),
	}
	s.sessions[session.Token] = session
	return session
}

// Resolve возвращает субъекта по токену сессии.
// Просроченные сессии удаляются при обращении.
func (s *SessionStore) Resolve(token string) (domain.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return domain.Principal{}, domain.ErrSessionExpired
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return domain.Principal{}, domain.ErrSessionExpired
	}

	return domain.Principal{
		EmployeeID: session.EmployeeID,
		Role:       session.Role,
	}, nil
}

// Delete завершает сессию
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
