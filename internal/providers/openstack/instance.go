package openstack

import (
	"context"
	"fmt"
	"sort"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"

	"novainventory/internal/config"
	"novainventory/internal/models"
)

// Keys inside a server's address entries
const (
	addrKey     = "addr"
	versionKey  = "version"
	addrTypeKey = "OS-EXT-IPS:type"
)

// InstanceService lists compute instances and resolves their images
type InstanceService struct {
	client ComputeClientAPI
}

// NewInstanceServiceWithCredentials authenticates and creates an InstanceService
func NewInstanceServiceWithCredentials(ctx context.Context, creds config.Credentials, region string) (*InstanceService, error) {
	session, err := NewSession(ctx, creds, region)
	if err != nil {
		return nil, err
	}
	return NewInstanceServiceWithClient(session), nil
}

// NewInstanceServiceWithClient creates a new InstanceService with a provided client
func NewInstanceServiceWithClient(client ComputeClientAPI) *InstanceService {
	return &InstanceService{
		client: client,
	}
}

// ListInstances returns every instance owned by the tenant, unfiltered.
func (s *InstanceService) ListInstances(ctx context.Context) ([]models.Instance, error) {
	records, err := s.client.ListServers(ctx)
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("failed to list servers: %w", err), ServerResourceType, "")
	}

	instances := make([]models.Instance, 0, len(records))
	for _, r := range records {
		instances = append(instances, toInstance(r))
	}
	return instances, nil
}

// GetImageName returns the display name of an image.
func (s *InstanceService) GetImageName(ctx context.Context, imageID string) (string, error) {
	if imageID == "" {
		return "", NewError(ErrResourceNotFound, ImageResourceType, "", "Instance has no image", nil)
	}

	name, err := s.client.GetImageName(ctx, imageID)
	if err != nil {
		return "", ClassifyError(fmt.Errorf("failed to get image %s: %w", imageID, err), ImageResourceType, imageID)
	}
	return name, nil
}

// toInstance converts a compute record to the domain model
func toInstance(r ServerRecord) models.Instance {
	srv := r.Server
	return models.Instance{
		ID:         srv.ID,
		Name:       srv.Name,
		Status:     srv.Status,
		AccessIPv4: srv.AccessIPv4,
		ImageID:    imageID(srv),
		Metadata:   srv.Metadata,
		Networks:   convertAddresses(srv.Addresses),
		Attributes: r.Raw,
	}
}

// imageID returns the id of the server's image; servers booted from a
// volume report no image.
func imageID(srv servers.Server) string {
	if srv.Image == nil {
		return ""
	}
	id, _ := srv.Image["id"].(string)
	return id
}

// convertAddresses turns the compute address map into networks sorted by name
func convertAddresses(addresses map[string]any) []models.Network {
	if len(addresses) == 0 {
		return nil
	}

	names := make([]string, 0, len(addresses))
	for name := range addresses {
		names = append(names, name)
	}
	sort.Strings(names)

	networks := make([]models.Network, 0, len(names))
	for _, name := range names {
		network := models.Network{Name: name}
		entries, _ := addresses[name].([]any)
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			addr, _ := entry[addrKey].(string)
			addrType, _ := entry[addrTypeKey].(string)
			version, _ := entry[versionKey].(float64)
			network.Addresses = append(network.Addresses, models.Address{
				Addr:    addr,
				Type:    addrType,
				Version: int(version),
			})
		}
		networks = append(networks, network)
	}
	return networks
}
