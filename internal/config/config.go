package config

import (
	"fmt"
	"os"
	"strings"

	"novainventory/internal/inventory"
)

// Supported instance sources
const (
	ProviderOpenStack = "openstack"
	ProviderAWS       = "aws"
)

// Environment variables read at startup
const (
	EnvAuthURL    = "OS_AUTH_URL"
	EnvTenantName = "OS_TENANT_NAME"
	EnvUsername   = "OS_USERNAME"
	EnvPassword   = "OS_PASSWORD"
	EnvRegionName = "OS_REGION_NAME"
	EnvDomainName = "OS_USER_DOMAIN_NAME"

	EnvSettingsPath = "NOVA_INVENTORY_CONFIG"
	EnvLogLevel     = "NOVA_INVENTORY_LOG_LEVEL"
)

// Credentials are the values needed to authenticate against OpenStack.
type Credentials struct {
	AuthURL    string
	TenantName string
	Username   string
	Password   string
	DomainName string
}

// Config contains everything the inventory run needs.
type Config struct {
	Provider       string                  // Instance source (openstack or aws)
	Region         string                  // Provider region, empty for the provider default
	LogLevel       string                  // debug, info, warn or error
	DefaultGroup   string                  // Group for instances without "groups" metadata
	DefaultSSHUser string                  // Login when no image rule matches
	SSHUserRules   []inventory.SSHUserRule // nil selects the built-in rules
	Credentials    Credentials             // OpenStack credentials
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration from the process environment.
func Load() (*Config, error) {
	return LoadWithLookup(os.LookupEnv)
}

// LoadWithLookup builds the configuration using lookup for environment access.
func LoadWithLookup(lookup LookupFunc) (*Config, error) {
	cfg := &Config{
		Provider:       ProviderOpenStack,
		LogLevel:       "warn",
		DefaultGroup:   inventory.DefaultGroup,
		DefaultSSHUser: inventory.DefaultSSHUser,
	}

	if path := env(lookup, EnvSettingsPath); path != "" {
		settings, err := ParseSettingsFile(path)
		if err != nil {
			return nil, err
		}
		settings.apply(cfg)
	}

	if level := env(lookup, EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	switch cfg.Provider {
	case ProviderOpenStack:
		creds, err := credentialsFromEnv(lookup)
		if err != nil {
			return nil, err
		}
		cfg.Credentials = creds
		if cfg.Region == "" {
			cfg.Region = env(lookup, EnvRegionName)
		}
	case ProviderAWS:
	default:
		return nil, &Error{
			Category: ErrInvalidSettings,
			Message:  fmt.Sprintf("unsupported provider %q", cfg.Provider),
		}
	}

	return cfg, nil
}

// credentialsFromEnv requires all four OpenStack credential variables.
func credentialsFromEnv(lookup LookupFunc) (Credentials, error) {
	creds := Credentials{
		AuthURL:    rawEnv(lookup, EnvAuthURL),
		TenantName: rawEnv(lookup, EnvTenantName),
		Username:   rawEnv(lookup, EnvUsername),
		Password:   rawEnv(lookup, EnvPassword),
		DomainName: rawEnv(lookup, EnvDomainName),
	}

	var missing []string
	for _, req := range []struct {
		name  string
		value string
	}{
		{EnvAuthURL, creds.AuthURL},
		{EnvTenantName, creds.TenantName},
		{EnvUsername, creds.Username},
		{EnvPassword, creds.Password},
	} {
		if strings.TrimSpace(req.value) == "" {
			missing = append(missing, req.name)
		}
	}

	if len(missing) > 0 {
		return Credentials{}, &Error{
			Category:  ErrMissingCredentials,
			Message:   "required environment variables are not set",
			Variables: missing,
		}
	}
	return creds, nil
}

// env reads a non-secret setting with surrounding whitespace removed.
func env(lookup LookupFunc, key string) string {
	return strings.TrimSpace(rawEnv(lookup, key))
}

// rawEnv reads a credential exactly as supplied.
func rawEnv(lookup LookupFunc, key string) string {
	v, _ := lookup(key)
	return v
}
