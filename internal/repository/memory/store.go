// Package memory provides map-backed repositories for local runs and tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/google/uuid"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	mu       sync.RWMutex
	timeLogs []timelog.TimeLog
	profiles map[string]employee.PayProfile
	payrolls map[string]payroll.Payroll
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]employee.PayProfile),
		payrolls: make(map[string]payroll.Payroll),
		now:      time.Now,
	}
}

// PutPayProfile inserts or replaces an employee pay profile.
func (s *Store) PutPayProfile(p employee.PayProfile) employee.PayProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.profiles[p.EmployeeID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		if p.ID == "" {
			p.ID = newID()
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.profiles[p.EmployeeID] = p
	return p
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func payrollKey(k payroll.Key) string {
	return k.EmployeeID + "|" + k.PayPeriodStart.Format(payroll.DateLayout) + "|" + k.PayPeriodEnd.Format(payroll.DateLayout)
}
