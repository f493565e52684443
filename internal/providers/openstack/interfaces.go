package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
)

// ServerRecord is one server as listed by the compute API: the decoded
// gophercloud struct and the raw JSON object it was decoded from.
type ServerRecord struct {
	Server servers.Server
	Raw    map[string]any
}

// ComputeClientAPI defines the compute operations we need to mock
//
//go:generate mockery --name=ComputeClientAPI --output=./mocks
type ComputeClientAPI interface {
	ListServers(ctx context.Context) ([]ServerRecord, error)
	GetImageName(ctx context.Context, imageID string) (string, error)
}
