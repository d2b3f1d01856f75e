package store

import (
	"context"
	"errors"

	"github.com/railpick/railpick/backend/dashboard-service/internal/models"
)

// ErrStoreUnavailable wraps any failed store query. The aggregator treats it
// as fatal for the whole render cycle: either every dataset is fetched or the
// computation fails outright.
var ErrStoreUnavailable = errors.New("store unavailable")

// Reader defines the read-only queries the dashboard performs against the
// document store. The dashboard never mutates store data.
type Reader interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListDevices(ctx context.Context, userID string) ([]models.Device, error)
	ListTickets(ctx context.Context, userID string) ([]models.Ticket, error)
	ListDeviceTrials(ctx context.Context) ([]models.DeviceTrial, error)
	ListConsentLogs(ctx context.Context) ([]models.ConsentLog, error)
	CountEmailMappings(ctx context.Context) (int64, error)
}
