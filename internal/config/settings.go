package config

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"novainventory/internal/inventory"
)

// Settings is the optional HCL settings file.
type Settings struct {
	Provider       string         `hcl:"provider,optional"`
	Region         string         `hcl:"region,optional"`
	LogLevel       string         `hcl:"log_level,optional"`
	DefaultGroup   string         `hcl:"default_group,optional"`
	DefaultSSHUser string         `hcl:"default_ssh_user,optional"`
	SSHUsers       []SSHUserBlock `hcl:"ssh_user,block"`
}

// SSHUserBlock is an ssh_user "<login>" { match = "..." } block.
type SSHUserBlock struct {
	User  string `hcl:"user,label"`
	Match string `hcl:"match"`
}

// ParseSettingsFile parses an HCL settings file.
func ParseSettingsFile(path string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &Error{
			Category:   ErrInvalidSettings,
			Message:    "failed to parse settings file " + path,
			Underlying: diags,
		}
	}

	if file == nil || file.Body == nil {
		return nil, &Error{
			Category: ErrInvalidSettings,
			Message:  "settings file is empty or invalid: " + path,
		}
	}

	var settings Settings
	diags = gohcl.DecodeBody(file.Body, nil, &settings)
	if diags.HasErrors() {
		return nil, &Error{
			Category:   ErrInvalidSettings,
			Message:    "failed to decode settings file " + path,
			Underlying: diags,
		}
	}

	return &settings, nil
}

// apply overlays the non-empty settings onto cfg.
func (s *Settings) apply(cfg *Config) {
	if s.Provider != "" {
		cfg.Provider = s.Provider
	}
	if s.Region != "" {
		cfg.Region = s.Region
	}
	if s.LogLevel != "" {
		cfg.LogLevel = s.LogLevel
	}
	if s.DefaultGroup != "" {
		cfg.DefaultGroup = s.DefaultGroup
	}
	if s.DefaultSSHUser != "" {
		cfg.DefaultSSHUser = s.DefaultSSHUser
	}
	if len(s.SSHUsers) > 0 {
		cfg.SSHUserRules = make([]inventory.SSHUserRule, 0, len(s.SSHUsers))
		for _, b := range s.SSHUsers {
			cfg.SSHUserRules = append(cfg.SSHUserRules, inventory.SSHUserRule{Match: b.Match, User: b.User})
		}
	}
}
