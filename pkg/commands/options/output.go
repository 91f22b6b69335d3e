// Package options defines shared flag helpers for CLI commands.
package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/studyplan/pkg/app"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when --json is set and swallows
// it, so scripts always get parseable output.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if kind := errorKind(err); kind != "" {
			out["kind"] = kind
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

func errorKind(err error) string {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		return "validation:" + verr.Field
	case errors.Is(err, app.ErrNotFound):
		return "not_found"
	case errors.Is(err, app.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, app.ErrWrite):
		return "write"
	}
	return ""
}
