package report

import "novainventory/internal/inventory"

// IPrinter is the interface for emitting inventory documents
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintInventory(doc *inventory.Document) error
	PrintHostVars(vars inventory.HostVars) error
}
