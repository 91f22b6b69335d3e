package notifications

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/notify"
	"tableflip.dev/studyplan/pkg/store"
)

func setup(t *testing.T) (*app.Service, *bytes.Buffer, *notify.Terminal) {
	t.Helper()
	s := app.New(store.NewMemory())
	s.Load(context.Background())
	var banner bytes.Buffer
	return s, &banner, notify.NewTerminal(&banner, s.Settings().Notifications, notify.WithSupported(true))
}

func TestEnableDisable(t *testing.T) {
	ctx := context.Background()
	s, _, term := setup(t)

	var out bytes.Buffer
	require.NoError(t, (&Notifications{Action: Enable, Store: s, Notifier: term, Out: &out}).Do(ctx))
	assert.Equal(t, model.PermissionGranted, s.Settings().Notifications)
	assert.Contains(t, out.String(), "granted")

	out.Reset()
	require.NoError(t, (&Notifications{Action: Disable, Store: s, Notifier: term, Out: &out}).Do(ctx))
	assert.Equal(t, model.PermissionDenied, s.Settings().Notifications)
	assert.Contains(t, out.String(), "denied")
}

func TestTestShowsWhenGranted(t *testing.T) {
	ctx := context.Background()
	s, banner, term := setup(t)
	_, err := s.SetNotifications(ctx, model.PermissionGranted)
	require.NoError(t, err)

	require.NoError(t, (&Notifications{Action: Test, Store: s, Notifier: term, Out: &bytes.Buffer{}}).Do(ctx))
	assert.Contains(t, banner.String(), "Reminder: test")
}

func TestTestAlertsOtherwise(t *testing.T) {
	s, banner, term := setup(t)
	require.NoError(t, (&Notifications{Action: Test, Store: s, Notifier: term, Out: &bytes.Buffer{}}).Do(context.Background()))
	assert.Contains(t, banner.String(), "Reminders will look like this.")
}

func TestStatusUnsupported(t *testing.T) {
	s := app.New(store.NewMemory())
	s.Load(context.Background())
	term := notify.NewTerminal(&bytes.Buffer{}, model.PermissionNotRequested)

	var out bytes.Buffer
	require.NoError(t, (&Notifications{Action: Status, Store: s, Notifier: term, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "not a terminal")
}

func TestUnknownAction(t *testing.T) {
	s, _, term := setup(t)
	assert.Error(t, (&Notifications{Action: "snooze", Store: s, Notifier: term}).Do(context.Background()))
}

func TestTestAlertsWhenTerminalUnsupported(t *testing.T) {
	ctx := context.Background()
	s := app.New(store.NewMemory())
	s.Load(ctx)
	_, err := s.SetNotifications(ctx, model.PermissionGranted)
	require.NoError(t, err)

	var banner bytes.Buffer
	term := notify.NewTerminal(&banner, model.PermissionGranted)
	require.NoError(t, (&Notifications{Action: Test, Store: s, Notifier: term, Out: &bytes.Buffer{}}).Do(ctx))

	assert.NotContains(t, banner.String(), "🔔")
	assert.Contains(t, banner.String(), "! Reminder: test")
}
