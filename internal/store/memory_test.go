package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/railpick/railpick/backend/dashboard-service/internal/models"
)

func TestMemoryReaderInsertionOrder(t *testing.T) {
	m := NewMemoryReader()
	m.AddUser(models.User{ID: "u1", Email: "a@example.com"})
	m.AddUser(models.User{ID: "u2", Email: "b@example.com"})
	m.AddDevice(models.Device{UserID: "u1", DeviceModel: "samsung SM-S928N"})
	m.AddDevice(models.Device{UserID: "u1", DeviceModel: "samsung SM-S921N"})

	ctx := context.Background()
	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, []string{users[0].ID, users[1].ID})

	devs, err := m.ListDevices(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, devs, 2)
	require.Equal(t, "samsung SM-S928N", devs[0].DeviceModel)

	none, err := m.ListDevices(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryReaderFailWith(t *testing.T) {
	m := NewMemoryReader()
	m.SetEmailMappings(4)

	ctx := context.Background()
	n, err := m.CountEmailMappings(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	m.FailWith = ErrStoreUnavailable
	_, err = m.ListUsers(ctx)
	require.True(t, errors.Is(err, ErrStoreUnavailable))
	_, err = m.CountEmailMappings(ctx)
	require.True(t, errors.Is(err, ErrStoreUnavailable))
}
