package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesDefaultSettings(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "henrietta")

	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	settings, err := f.users.GetSettings(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "en", settings.Language)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Equal(t, "USD", settings.Currency)
	assert.Equal(t, "metric", settings.MeasurementUnit)
	assert.True(t, settings.NotificationsEnabled)
	assert.True(t, settings.EmailNotifications)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	f.user(t, "taken")

	_, err := f.users.Register(f.ctx, &types.RegisterRequest{
		Username: "taken",
		Email:    "other@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, "Username already registered", err.Error())

	_, err = f.users.Register(f.ctx, &types.RegisterRequest{
		Username: "fresh",
		Email:    "TAKEN@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, "Email already registered", err.Error())

	var count int64
	require.NoError(t, f.db.Model(&models.UserSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "layer")

	got, err := f.users.Login(f.ctx, "layer", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.Login(f.ctx, "layer", "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.users.Login(f.ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
	_, err = f.users.Login(f.ctx, "layer", "secret123")
	assert.ErrorIs(t, err, service.ErrInactive)
}

func TestUsernameAvailable(t *testing.T) {
	f := newFixture(t)
	f.user(t, "rooster")

	available, err := f.users.UsernameAvailable(f.ctx, "rooster")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.users.UsernameAvailable(f.ctx, "pullet")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateSettingsIsPartial(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "settings")

	lang := "fr"
	off := false
	updated, err := f.users.UpdateSettings(f.ctx, user.ID, &types.UpdateSettingsRequest{
		Language:           &lang,
		EmailNotifications: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "fr", updated.Language)
	assert.False(t, updated.EmailNotifications)
	assert.Equal(t, "UTC", updated.Timezone)
	assert.True(t, updated.NotificationsEnabled)

	_, err = f.users.UpdateSettings(f.ctx, uuid.New(), &types.UpdateSettingsRequest{Language: &lang})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
