package printers

import (
	"encoding/json"
	"fmt"
)

// JSON writes v indented, for --json output.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes a prepared table followed by a blank line.
func (pp *PrettyPrint) Table(tbl fmt.Stringer) error {
	if _, err := fmt.Fprintln(pp.out(), tbl); err != nil {
		return err
	}
	pp.NewLine()
	return nil
}
