package orchestrator

import "novainventory/internal/inventory"

// Mode selects which document a run produces.
type Mode string

const (
	// ModeList produces the full inventory of groups and hosts
	ModeList Mode = "list"
	// ModeHost produces the flattened attributes of matching hosts
	ModeHost Mode = "host"
)

// Config contains all the parameters needed for one inventory run.
type Config struct {
	Mode           Mode                    // list or host
	HostToken      string                  // Name substring or access IP for host mode
	DefaultGroup   string                  // Group for instances without "groups" metadata
	DefaultSSHUser string                  // Login when no image rule matches
	SSHUserRules   []inventory.SSHUserRule // nil selects the built-in rules
}
