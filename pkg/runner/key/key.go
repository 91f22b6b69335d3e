// Package key provides CLI helpers to display the glyph legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/studyplan/pkg/glyph"
)

// Key prints a legend describing state and marker glyphs.
type Key struct{}

// Do renders the state and marker keys to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "State", glyph.States())
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "Markers", glyph.Markers())
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders one glyph table under heading.
func (k *Key) Key(_ context.Context, heading string, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(heading), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
