package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/images"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"

	"novainventory/internal/config"
)

// Session is an authenticated compute client. It is created once per run
// and passed to whatever needs to talk to the API.
type Session struct {
	compute *gophercloud.ServiceClient
}

// NewSession authenticates with Keystone and resolves the compute endpoint.
func NewSession(ctx context.Context, creds config.Credentials, region string) (*Session, error) {
	provider, err := openstack.NewClient(creds.AuthURL)
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("unable to create OpenStack client: %w", err), IdentityResourceType, creds.AuthURL)
	}
	provider.Context = ctx

	opts := gophercloud.AuthOptions{
		IdentityEndpoint: creds.AuthURL,
		Username:         creds.Username,
		Password:         creds.Password,
		TenantName:       creds.TenantName,
		DomainName:       creds.DomainName,
	}
	if err := openstack.Authenticate(provider, opts); err != nil {
		return nil, ClassifyError(fmt.Errorf("unable to authenticate: %w", err), IdentityResourceType, creds.AuthURL)
	}

	compute, err := openstack.NewComputeV2(provider, gophercloud.EndpointOpts{Region: region})
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("unable to create compute client: %w", err), ComputeResourceType, region)
	}

	return &Session{compute: compute}, nil
}

// ListServers returns every server visible to the tenant.
func (s *Session) ListServers(ctx context.Context) ([]ServerRecord, error) {
	s.bind(ctx)

	pages, err := servers.List(s.compute, servers.ListOpts{}).AllPages()
	if err != nil {
		return nil, err
	}

	list, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, fmt.Errorf("unable to decode servers: %w", err)
	}

	var raw []map[string]any
	if err := servers.ExtractServersInto(pages, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode raw servers: %w", err)
	}
	if len(raw) != len(list) {
		return nil, fmt.Errorf("server listing mismatch: %d decoded, %d raw", len(list), len(raw))
	}

	records := make([]ServerRecord, len(list))
	for i := range list {
		records[i] = ServerRecord{Server: list[i], Raw: raw[i]}
	}
	return records, nil
}

// GetImageName returns the display name of a compute image.
func (s *Session) GetImageName(ctx context.Context, imageID string) (string, error) {
	s.bind(ctx)

	image, err := images.Get(s.compute, imageID).Extract()
	if err != nil {
		return "", err
	}
	return image.Name, nil
}

// bind makes ctx the request context; gophercloud v1 reads it from the provider client.
func (s *Session) bind(ctx context.Context) {
	if s.compute.ProviderClient != nil {
		s.compute.ProviderClient.Context = ctx
	}
}
