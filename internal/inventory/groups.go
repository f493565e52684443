package inventory

import (
	"strings"

	"novainventory/internal/models"
)

const (
	// DefaultGroup holds instances that carry no "groups" metadata entry
	DefaultGroup = "nova"

	// GroupsMetadataKey is the metadata entry listing comma-separated group names
	GroupsMetadataKey = "groups"
)

// Groups returns the group names an instance belongs to: the entries of
// its "groups" metadata, or defaultGroup when there is none, followed by
// the instance's own name as an alias group.
//
// The returned slice is always freshly allocated; callers may append to it.
func Groups(instance models.Instance, defaultGroup string) []string {
	if defaultGroup == "" {
		defaultGroup = DefaultGroup
	}

	var groups []string
	if raw, ok := instance.Metadata[GroupsMetadataKey]; ok {
		groups = strings.Split(raw, ",")
	} else {
		groups = []string{defaultGroup}
	}

	return append(groups, instance.Name)
}
