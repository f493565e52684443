package orchestrator

import (
	"context"

	"novainventory/internal/models"
)

// InstanceServiceAPI is an instance source: OpenStack compute or EC2.
//
//go:generate mockery --name=InstanceServiceAPI --output=./mocks
type InstanceServiceAPI interface {
	ListInstances(ctx context.Context) ([]models.Instance, error)
	GetImageName(ctx context.Context, imageID string) (string, error)
}
