package auth

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore хранит выданные одноразовые коды. Код действует ограниченное
// время и сгорает при первой успешной проверке.
type OTPStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]otpEntry
	now   func() time.Time
}

// NewOTPStore создаёт хранилище одноразовых кодов
func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{
		ttl:   ttl,
		codes: make(map[string]otpEntry),
		now:   time.Now,
	}
}

// Issue выдаёт шестизначный код для сотрудника.
// Повторный запрос замещает предыдущий код.
func (s *OTPStore) Issue(employeeID string) string {
	code := fmt.Sprintf("%06d", rand.Intn(900000)+100000)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[employeeID] = otpEntry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return code
}

// Verify проверяет код и сжигает его при совпадении
func (s *OTPStore) Verify(employeeID, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[employeeID]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.codes, employeeID)
		return false
	}
	if entry.code != code {
		return false
	}

	delete(s.codes, employeeID)
	return true
}
