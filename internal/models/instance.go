package models

// Address tags as reported by the compute API.
const (
	AddressTypeFixed    = "fixed"
	AddressTypeFloating = "floating"
)

// Address is a single address attached to an instance on one network.
type Address struct {
	Addr    string `json:"addr"`
	Type    string `json:"type,omitempty"`
	Version int    `json:"version,omitempty"`
}

// Network is a named network attachment and the addresses the instance holds on it.
type Network struct {
	Name      string    `json:"name"`
	Addresses []Address `json:"addresses"`
}

// Instance is a provider-neutral view of a remote compute record.
// Networks are ordered by name so that "first network" is stable between runs.
type Instance struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     string            `json:"status,omitempty"`
	AccessIPv4 string            `json:"access_ipv4,omitempty"`
	ImageID    string            `json:"image_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Networks   []Network         `json:"networks,omitempty"`

	// Attributes is the raw record as returned by the provider, keyed by the
	// provider's own field names.
	Attributes map[string]any `json:"-"`
}

// FirstNetwork returns the first network attachment, if any.
func (i Instance) FirstNetwork() (Network, bool) {
	if len(i.Networks) == 0 {
		return Network{}, false
	}
	return i.Networks[0], true
}
