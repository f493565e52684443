package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"novainventory/internal/inventory"
)

// PrintInventory writes the list-mode document as a single JSON line.
func PrintInventory(w io.Writer, doc *inventory.Document) error {
	if doc == nil {
		doc = inventory.NewDocument()
	}
	return printJSON(w, doc)
}

// PrintHostVars writes the host-mode attribute map as a single JSON line.
// A nil map is written as {}.
func PrintHostVars(w io.Writer, vars inventory.HostVars) error {
	if vars == nil {
		vars = inventory.HostVars{}
	}
	return printJSON(w, vars)
}

// printJSON encodes v followed by a newline
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error marshaling inventory to JSON: %w", err)
	}
	return nil
}

// DefaultPrinter is the default implementation of the report printer.
// A nil Out writes to os.Stdout.
type DefaultPrinter struct {
	Out io.Writer
}

// PrintInventory implements the printer interface
func (p DefaultPrinter) PrintInventory(doc *inventory.Document) error {
	return PrintInventory(p.writer(), doc)
}

// PrintHostVars implements the printer interface
func (p DefaultPrinter) PrintHostVars(vars inventory.HostVars) error {
	return PrintHostVars(p.writer(), vars)
}

func (p DefaultPrinter) writer() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}
