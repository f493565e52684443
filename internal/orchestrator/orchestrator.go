package orchestrator

import (
	"context"
	"fmt"

	"novainventory/internal/config"
	"novainventory/internal/inventory"
	"novainventory/internal/models"
	"novainventory/internal/providers/aws"
	"novainventory/internal/providers/openstack"
	"novainventory/internal/report"
	"novainventory/pkg/logging"
)

// Service runs the bootstrap, fetch and projection pipeline.
type Service struct {
	config        Config
	instances     InstanceServiceAPI
	reportPrinter report.IPrinter
	logger        logging.Logger
	sshUsers      *inventory.SSHUserInferrer
}

// NewService creates a new orchestrator service with the given configuration.
func NewService(
	config Config,
	instances InstanceServiceAPI,
	reportPrinter report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		config:        config,
		instances:     instances,
		reportPrinter: reportPrinter,
		logger:        logger,
		sshUsers:      inventory.NewSSHUserInferrer(config.SSHUserRules, config.DefaultSSHUser),
	}
}

// NewDefaultService authenticates against the configured provider and
// wires the default printer.
func NewDefaultService(ctx context.Context, runCfg Config, cfg *config.Config, logger logging.Logger) (*Service, error) {
	var (
		source InstanceServiceAPI
		err    error
	)

	switch cfg.Provider {
	case config.ProviderAWS:
		logger.Debug("Using EC2 instance source in region %q", cfg.Region)
		source, err = aws.NewInstanceServiceWithDefaultConfig(ctx, cfg.Region)
	default:
		logger.Debug("Authenticating against %s as %s", cfg.Credentials.AuthURL, cfg.Credentials.Username)
		source, err = openstack.NewInstanceServiceWithCredentials(ctx, cfg.Credentials, cfg.Region)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s instance source: %w", cfg.Provider, err)
	}

	return NewService(runCfg, source, report.DefaultPrinter{}, logger), nil
}

// Run produces and prints the document for the configured mode.
// Nothing is printed when any step fails.
func (s *Service) Run(ctx context.Context) error {
	if err := s.validateConfig(); err != nil {
		return err
	}

	switch s.config.Mode {
	case ModeHost:
		vars, err := s.BuildHostVars(ctx, s.config.HostToken)
		if err != nil {
			return err
		}
		return s.reportPrinter.PrintHostVars(vars)
	default:
		doc, err := s.BuildInventory(ctx)
		if err != nil {
			return err
		}
		return s.reportPrinter.PrintInventory(doc)
	}
}

// BuildInventory groups every instance by its access IP and records SSH
// connection hints. The first instance without an access IP aborts the run.
func (s *Service) BuildInventory(ctx context.Context) (*inventory.Document, error) {
	instances, err := s.fetchInstances(ctx)
	if err != nil {
		return nil, err
	}

	doc := inventory.NewDocument()
	for _, instance := range instances {
		accessIP, err := inventory.AccessIP(instance)
		if err != nil {
			return nil, err
		}

		groups := inventory.Groups(instance, s.config.DefaultGroup)
		if err := doc.AddHost(groups, accessIP); err != nil {
			return nil, err
		}

		user := s.sshUser(ctx, instance)
		doc.SetConnection(accessIP, user.User)

		s.logger.Debug("Instance %s (%s) in groups %v as %s@%s", instance.Name, instance.ID, groups, user.User, accessIP)
	}

	s.logger.Info("Inventory built: %d instances, %d groups", len(instances), len(doc.Groups()))
	return doc, nil
}

// BuildHostVars flattens the attributes of every instance whose name
// contains token or whose access IP equals it. Later matches overwrite
// keys set by earlier ones.
func (s *Service) BuildHostVars(ctx context.Context, token string) (inventory.HostVars, error) {
	instances, err := s.fetchInstances(ctx)
	if err != nil {
		return nil, err
	}

	vars := inventory.HostVars{}
	matches := 0
	for _, instance := range instances {
		accessIP, err := inventory.AccessIP(instance)
		if err != nil {
			return nil, err
		}

		if !inventory.MatchesHost(token, instance.Name, accessIP) {
			continue
		}
		matches++
		inventory.FlattenAttributes(vars, instance.Attributes)
	}

	if matches > 1 {
		s.logger.Warn("Host %q matched %d instances; later matches overwrite earlier attributes", token, matches)
	}
	return vars, nil
}

// fetchInstances lists every instance from the source
func (s *Service) fetchInstances(ctx context.Context) ([]models.Instance, error) {
	instances, err := s.instances.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching instances: %w", err)
	}
	s.logger.Debug("Fetched %d instances", len(instances))
	return instances, nil
}

// sshUser infers the login from the instance's image; lookup failures
// fall back to the default user.
func (s *Service) sshUser(ctx context.Context, instance models.Instance) inventory.SSHUser {
	name, err := s.instances.GetImageName(ctx, instance.ImageID)
	user := s.sshUsers.Infer(name, err)
	if user.LookupErr != nil {
		s.logger.Debug("Image lookup for %s failed, using %s: %v", instance.Name, user.User, user.LookupErr)
	}
	return user
}

// validateConfig checks if the required configuration is provided.
func (s *Service) validateConfig() error {
	switch s.config.Mode {
	case ModeList, ModeHost:
		return nil
	default:
		return inventory.NewError(inventory.ErrInvalidInput, fmt.Sprintf("unknown mode %q", s.config.Mode), "", nil)
	}
}
