package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/model"
)

func TestTerminalUnsupportedWhenNotATTY(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, model.PermissionGranted)

	assert.Equal(t, model.PermissionUnsupported, n.Permission())
	p, err := n.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PermissionUnsupported, p)
}

func TestTerminalRequestPermission(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, "", WithSupported(true))
	assert.Equal(t, model.PermissionNotRequested, n.Permission())

	p, err := n.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, p)
	assert.Equal(t, model.PermissionGranted, n.Permission())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewTerminal(&buf, model.PermissionDenied, WithSupported(true)).RequestPermission(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminalShowMarksReplacements(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, model.PermissionGranted, WithSupported(true))

	require.NoError(t, n.Show("Reminder: Essay", "History, due soon", "task-1"))
	assert.Contains(t, buf.String(), "Reminder: Essay")
	assert.Contains(t, buf.String(), "History, due soon")
	assert.NotContains(t, buf.String(), "(updated)")

	buf.Reset()
	require.NoError(t, n.Show("Reminder: Essay", "History, due soon", "task-1"))
	assert.Contains(t, buf.String(), "(updated)")

	buf.Reset()
	require.NoError(t, n.Show("Reminder: Lab", "Chemistry", "task-2"))
	assert.NotContains(t, buf.String(), "(updated)")
}

type recorder struct {
	shown, alerted []string
	facility       model.Permission
}

func (r *recorder) Permission() model.Permission {
	if r.facility == "" {
		return model.PermissionGranted
	}
	return r.facility
}
func (r *recorder) RequestPermission(context.Context) (model.Permission, error) {
	return model.PermissionGranted, nil
}
func (r *recorder) Show(title, body, tag string) error {
	r.shown = append(r.shown, strings.Join([]string{title, body, tag}, "|"))
	return nil
}
func (r *recorder) Alert(title, body string) error {
	r.alerted = append(r.alerted, title+"|"+body)
	return nil
}

func TestDeliver(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Deliver(r, model.PermissionGranted, "t", "b", "x"))
	require.NoError(t, Deliver(r, model.PermissionDenied, "t2", "b2", "y"))
	require.NoError(t, Deliver(r, model.PermissionUnsupported, "t3", "b3", "z"))

	assert.Equal(t, []string{"t|b|x"}, r.shown)
	assert.Equal(t, []string{"t2|b2", "t3|b3"}, r.alerted)
}

func TestDeliverFallsBackWhenFacilityUnsupported(t *testing.T) {
	r := &recorder{facility: model.PermissionUnsupported}
	require.NoError(t, Deliver(r, model.PermissionGranted, "t", "b", "x"))

	assert.Empty(t, r.shown)
	assert.Equal(t, []string{"t|b"}, r.alerted)
	assert.Equal(t, model.PermissionUnsupported, Effective(r, model.PermissionGranted))
	assert.Equal(t, model.PermissionDenied, Effective(&recorder{}, model.PermissionDenied))
}
