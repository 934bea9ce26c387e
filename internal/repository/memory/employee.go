package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetPayProfile(ctx context.Context, employeeID string) (employee.PayProfile, error) {
	if err := ctx.Err(); err != nil {
		return employee.PayProfile{}, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.profiles[employeeID]
	if !ok {
		return employee.PayProfile{}, employee.ErrEmployeeNotFound
	}
	return p, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.PayProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var profiles []employee.PayProfile
	for _, p := range r.store.profiles {
		if p.IsActive() {
			profiles = append(profiles, p)
		}
	}
	sortProfiles(profiles)
	return profiles, nil
}

func (r *employeeRepository) ListByIDs(ctx context.Context, employeeIDs []string) ([]employee.PayProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	profiles := make([]employee.PayProfile, 0, len(employeeIDs))
	seen := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.store.profiles[id]; ok {
			profiles = append(profiles, p)
		}
	}
	sortProfiles(profiles)
	return profiles, nil
}

func sortProfiles(profiles []employee.PayProfile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].EmployeeID < profiles[j].EmployeeID
	})
}
