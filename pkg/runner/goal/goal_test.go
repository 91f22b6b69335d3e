package goal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/printers"
	"tableflip.dev/studyplan/pkg/store"
)

func newStore(t *testing.T) *app.Service {
	t.Helper()
	n := 0
	s := app.New(store.NewMemory(),
		app.WithClock(func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }),
		app.WithIDs(func() string { n++; return fmt.Sprintf("g%d", n) }),
	)
	s.Load(context.Background())
	return s
}

func decode(t *testing.T, b *bytes.Buffer) Progressed {
	t.Helper()
	var p Progressed
	require.NoError(t, json.Unmarshal(b.Bytes(), &p))
	b.Reset()
	return p
}

func TestGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	var out bytes.Buffer
	pp := printers.PrettyPrint{Out: &out}

	require.NoError(t, (&Add{Title: "Thesis draft", TargetHours: 40, JSON: true, Store: s, Printer: pp}).Do(ctx))
	g := decode(t, &out)
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, 0, g.Percent)

	require.NoError(t, (&Progress{ID: g.ID, Hours: 10, JSON: true, Store: s, Printer: pp}).Do(ctx))
	g = decode(t, &out)
	assert.Equal(t, 10.0, g.ProgressHours)
	assert.Equal(t, 25, g.Percent)
	assert.False(t, g.IsComplete)

	target := 10.0
	require.NoError(t, (&Edit{ID: g.ID, Patch: app.GoalPatch{TargetHours: &target}, JSON: true, Store: s, Printer: pp}).Do(ctx))
	g = decode(t, &out)
	assert.Equal(t, 100, g.Percent)
	assert.True(t, g.IsComplete)

	require.NoError(t, (&Delete{IDs: []string{g.ID, "unknown"}, Store: s}).Do(ctx))
	assert.Empty(t, s.Goals())
}

func TestProgressRejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, (&Add{Title: "Read", TargetHours: 5, JSON: true, Store: s, Printer: printers.PrettyPrint{Out: &bytes.Buffer{}}}).Do(ctx))

	err := (&Progress{ID: "g1", Hours: -1, Store: s}).Do(ctx)
	assert.ErrorIs(t, err, app.ErrValidation)
	assert.Equal(t, 0.0, s.Goals()[0].ProgressHours)
}

func TestListJSON(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	var out bytes.Buffer
	pp := printers.PrettyPrint{Out: &out}
	require.NoError(t, (&Add{Title: "A", TargetHours: 2, Store: s, Printer: pp}).Do(ctx))
	assert.Contains(t, out.String(), "Goals")
	out.Reset()

	require.NoError(t, (&List{JSON: true, Store: s, Printer: pp}).Do(ctx))
	var got []Progressed
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}
