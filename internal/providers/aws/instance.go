package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"novainventory/internal/models"
)

// nameTag is the tag EC2 consoles use as the display name
const nameTag = "Name"

// InstanceService lists EC2 instances in the shape of compute instances
type InstanceService struct {
	client EC2ClientAPI
}

// NewInstanceServiceWithDefaultConfig creates a new InstanceService with the default AWS SDK configuration
func NewInstanceServiceWithDefaultConfig(ctx context.Context, region string) (*InstanceService, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, ClassifyAWSError(fmt.Errorf("unable to load AWS SDK config: %w", err), EC2ResourceType, "")
	}

	return NewInstanceServiceWithClient(ec2.NewFromConfig(cfg)), nil
}

// NewInstanceServiceWithClient creates a new InstanceService with a provided client
func NewInstanceServiceWithClient(client EC2ClientAPI) *InstanceService {
	return &InstanceService{
		client: client,
	}
}

// ListInstances returns the instances of a single DescribeInstances call.
func (s *InstanceService) ListInstances(ctx context.Context) ([]models.Instance, error) {
	resp, err := s.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, ClassifyAWSError(fmt.Errorf("failed to describe EC2 instances: %w", err), EC2ResourceType, "")
	}

	var instances []models.Instance
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, toInstance(instance))
		}
	}
	return instances, nil
}

// GetImageName returns the name of an AMI.
func (s *InstanceService) GetImageName(ctx context.Context, imageID string) (string, error) {
	if imageID == "" {
		return "", NewAWSError(ErrResourceNotFound, ImageResourceType, "", "Instance has no image", nil)
	}

	resp, err := s.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return "", ClassifyAWSError(fmt.Errorf("failed to describe image %s: %w", imageID, err), ImageResourceType, imageID)
	}
	if len(resp.Images) == 0 {
		return "", NewAWSError(ErrResourceNotFound, ImageResourceType, imageID, "Image not found", nil)
	}

	return aws.ToString(resp.Images[0].Name), nil
}

// toInstance converts an EC2 instance to the domain model. The subnet
// becomes the only network: the private address is fixed, the public one floating.
func toInstance(instance types.Instance) models.Instance {
	id := aws.ToString(instance.InstanceId)
	tags := convertTags(instance.Tags)

	name := tags[nameTag]
	if name == "" {
		name = id
	}

	result := models.Instance{
		ID:         id,
		Name:       name,
		ImageID:    aws.ToString(instance.ImageId),
		Metadata:   tags,
		Attributes: attributes(instance),
	}
	if instance.State != nil {
		result.Status = string(instance.State.Name)
	}

	network := models.Network{Name: aws.ToString(instance.SubnetId)}
	if addr := aws.ToString(instance.PrivateIpAddress); addr != "" {
		network.Addresses = append(network.Addresses, models.Address{Addr: addr, Type: models.AddressTypeFixed, Version: 4})
	}
	if addr := aws.ToString(instance.PublicIpAddress); addr != "" {
		network.Addresses = append(network.Addresses, models.Address{Addr: addr, Type: models.AddressTypeFloating, Version: 4})
	}
	if len(network.Addresses) > 0 {
		result.Networks = []models.Network{network}
	}

	return result
}

// convertTags converts AWS SDK tags to a map
func convertTags(tags []types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return result
}

// attributes renders the SDK struct as a generic map keyed by field name
func attributes(instance types.Instance) map[string]any {
	data, err := json.Marshal(instance)
	if err != nil {
		return map[string]any{"InstanceId": aws.ToString(instance.InstanceId)}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"InstanceId": aws.ToString(instance.InstanceId)}
	}
	return out
}
