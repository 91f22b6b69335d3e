// Package transfer moves the whole planner state in and out as a JSON
// document.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/studyplan/pkg/app"
)

var errNoStore = errors.New("no planner store")

// Export writes a snapshot to File, or to Out when File is empty.
type Export struct {
	File  string
	Out   io.Writer
	Store *app.Service
}

func (n *Export) Do(_ context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	data, err := json.MarshalIndent(n.Store.ExportSnapshot(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if n.File == "" {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(n.File, data, 0o600); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Import replaces the planner state with the document in File, or read from
// In when File is "-".
type Import struct {
	File  string
	In    io.Reader
	Out   io.Writer
	Store *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}

	var (
		data []byte
		err  error
	)
	if n.File == "-" {
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(n.File)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if err := n.Store.ImportSnapshot(ctx, data); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "Imported %d tasks and %d goals.\n", len(n.Store.Tasks()), len(n.Store.Goals()))
	return nil
}
