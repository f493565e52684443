package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MetaKey is the reserved top-level entry holding per-host variables.
const MetaKey = "_meta"

// Connection variables published for every host in list mode.
const (
	SSHHostVar = "ansible_ssh_host"
	SSHUserVar = "ansible_ssh_user"
)

// Meta is the "_meta" section of the inventory document.
type Meta struct {
	HostVars map[string]map[string]string `json:"hostvars"`
}

// Document is the list-mode inventory: groups of hosts plus "_meta".
// Groups are emitted in the order they were first seen.
type Document struct {
	order  []string
	groups map[string][]string
	Meta   Meta
}

// NewDocument creates an empty inventory document.
func NewDocument() *Document {
	return &Document{
		groups: make(map[string][]string),
		Meta:   Meta{HostVars: make(map[string]map[string]string)},
	}
}

// AddHost appends host to every named group, creating groups on first use.
func (d *Document) AddHost(groups []string, host string) error {
	for _, g := range groups {
		if g == MetaKey {
			return NewError(ErrInvalidInput, fmt.Sprintf("group name %q is reserved", MetaKey), host, nil)
		}
	}
	for _, g := range groups {
		if _, ok := d.groups[g]; !ok {
			d.order = append(d.order, g)
		}
		d.groups[g] = append(d.groups[g], host)
	}
	return nil
}

// SetConnection records the SSH connection hints for host.
func (d *Document) SetConnection(host, user string) {
	d.Meta.HostVars[host] = map[string]string{
		SSHHostVar: host,
		SSHUserVar: user,
	}
}

// Groups returns group names in insertion order.
func (d *Document) Groups() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Hosts returns the hosts of a group, or nil if the group does not exist.
func (d *Document) Hosts(group string) []string {
	hosts, ok := d.groups[group]
	if !ok {
		return nil
	}
	out := make([]string, len(hosts))
	copy(out, hosts)
	return out
}

// MarshalJSON writes groups in insertion order followed by "_meta".
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, g := range d.order {
		if err := writeEntry(&buf, g, d.groups[g]); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeEntry(&buf, MetaKey, d.Meta); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, key string, value any) error {
	k, err := marshalUnescaped(key)
	if err != nil {
		return err
	}
	v, err := marshalUnescaped(value)
	if err != nil {
		return fmt.Errorf("error marshaling group %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// marshalUnescaped is json.Marshal without HTML escaping, matching the printer
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
