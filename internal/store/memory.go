package store

import (
	"context"
	"sync"

	"github.com/railpick/railpick/backend/dashboard-service/internal/models"
)

// MemoryReader is an in-memory Reader used by unit tests and local
// development without a live store. Slices are returned in insertion order
// so aggregate output is deterministic.
type MemoryReader struct {
	mu            sync.RWMutex
	users         []models.User
	devices       map[string][]models.Device
	tickets       map[string][]models.Ticket
	trials        []models.DeviceTrial
	consents      []models.ConsentLog
	emailMappings int64

	// FailWith, when set, makes every query return that error. Used to test
	// the all-or-nothing failure behavior of the aggregator.
	FailWith error
}

func NewMemoryReader() *MemoryReader {
	return &MemoryReader{
		devices: make(map[string][]models.Device),
		tickets: make(map[string][]models.Ticket),
	}
}

func (m *MemoryReader) AddUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
}

func (m *MemoryReader) AddDevice(d models.Device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices[d.UserID] = append(m.devices[d.UserID], d)
}

func (m *MemoryReader) AddTicket(t models.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.UserID] = append(m.tickets[t.UserID], t)
}

func (m *MemoryReader) AddTrial(t models.DeviceTrial) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trials = append(m.trials, t)
}

func (m *MemoryReader) AddConsent(c models.ConsentLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consents = append(m.consents, c)
}

func (m *MemoryReader) SetEmailMappings(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailMappings = n
}

func (m *MemoryReader) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.User(nil), m.users...), nil
}

func (m *MemoryReader) ListDevices(ctx context.Context, userID string) ([]models.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.Device(nil), m.devices[userID]...), nil
}

func (m *MemoryReader) ListTickets(ctx context.Context, userID string) ([]models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.Ticket(nil), m.tickets[userID]...), nil
}

func (m *MemoryReader) ListDeviceTrials(ctx context.Context) ([]models.DeviceTrial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.DeviceTrial(nil), m.trials...), nil
}

func (m *MemoryReader) ListConsentLogs(ctx context.Context) ([]models.ConsentLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.ConsentLog(nil), m.consents...), nil
}

func (m *MemoryReader) CountEmailMappings(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return m.emailMappings, nil
}
