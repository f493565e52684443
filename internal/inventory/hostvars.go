package inventory

import (
	"regexp"
	"strings"
)

const (
	attributePrefix = "os_"

	// excludedAttribute is the client handle attribute some compute
	// clients attach to records; it never belongs in host output.
	excludedAttribute = attributePrefix + "manager"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9-]`)

// HostVars is the flattened attribute map returned in host mode.
type HostVars map[string]any

// SanitizeKey turns a provider attribute name into a host variable name:
// characters outside [A-Za-z0-9-] become "_", the result is lower-cased
// and prefixed with "os_".
func SanitizeKey(key string) string {
	return attributePrefix + strings.ToLower(unsafeKeyChars.ReplaceAllString(key, "_"))
}

// FlattenAttributes copies every attribute into vars under its sanitized
// key, overwriting keys already present.
func FlattenAttributes(vars HostVars, attributes map[string]any) {
	for key, value := range attributes {
		sanitized := SanitizeKey(key)
		if sanitized == excludedAttribute {
			continue
		}
		vars[sanitized] = value
	}
}

// MatchesHost reports whether an instance is selected by a host-mode token:
// the token is a substring of its name or equals its access IP exactly.
func MatchesHost(token, name, accessIP string) bool {
	return strings.Contains(name, token) || token == accessIP
}
