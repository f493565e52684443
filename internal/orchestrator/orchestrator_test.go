package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"novainventory/internal/inventory"
	"novainventory/internal/models"
	instanceMocks "novainventory/internal/orchestrator/mocks"
	"novainventory/internal/report"
	reportMocks "novainventory/internal/report/mocks"
	"novainventory/pkg/logging"
)

// setupServiceWithMocks creates a Service backed by mocks for the instance source and printer
func setupServiceWithMocks(t *testing.T, config Config) (*Service, *instanceMocks.InstanceServiceAPI, *reportMocks.IPrinter) {
	instanceMock := instanceMocks.NewInstanceServiceAPI(t)
	reportMock := reportMocks.NewIPrinter(t)
	service := NewService(config, instanceMock, reportMock, logging.NewMockLogger())
	return service, instanceMock, reportMock
}

// createTestInstance builds an instance with a fixed address on one network
func createTestInstance(id, name, accessIPv4, fixed, imageID string, metadata map[string]string) models.Instance {
	inst := models.Instance{
		ID:         id,
		Name:       name,
		AccessIPv4: accessIPv4,
		ImageID:    imageID,
		Metadata:   metadata,
		Attributes: map[string]any{
			"id":         id,
			"name":       name,
			"accessIPv4": accessIPv4,
			"metadata":   metadata,
			"manager":    "client",
		},
	}
	if fixed != "" {
		inst.Networks = []models.Network{{
			Name:      "private",
			Addresses: []models.Address{{Addr: fixed, Type: models.AddressTypeFixed, Version: 4}},
		}}
	}
	return inst
}

func testInstances() []models.Instance {
	return []models.Instance{
		createTestInstance("id-web1", "web1", "10.0.0.5", "", "img-web", map[string]string{"groups": "app,prod"}),
		createTestInstance("id-db1", "db1", "", "10.0.0.9", "img-db", map[string]string{}),
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "List mode", config: Config{Mode: ModeList}},
		{name: "Host mode", config: Config{Mode: ModeHost, HostToken: "db1"}},
		{name: "Host mode with empty token", config: Config{Mode: ModeHost}},
		{name: "Unknown mode", config: Config{Mode: "describe"}, wantErr: true},
		{name: "Empty config", config: Config{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := setupServiceWithMocks(t, tt.config)

			err := service.validateConfig()

			if tt.wantErr {
				assert.Error(t, err, "Expected an error for invalid config")
				assert.True(t, inventory.IsErrorCategory(err, inventory.ErrInvalidInput))
			} else {
				assert.NoError(t, err, "Expected no error for valid config")
			}
		})
	}
}

func TestBuildInventory(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeList})

	instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)
	instanceMock.On("GetImageName", mock.Anything, "img-web").Return("", errors.New("image gone"))
	instanceMock.On("GetImageName", mock.Anything, "img-db").Return("Ubuntu 22.04", nil)

	doc, err := service.BuildInventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"app", "prod", "web1", "nova", "db1"}, doc.Groups())
	for _, g := range []string{"app", "prod", "web1"} {
		assert.Equal(t, []string{"10.0.0.5"}, doc.Hosts(g), "group %s", g)
	}
	assert.Equal(t, []string{"10.0.0.9"}, doc.Hosts("nova"))
	assert.Equal(t, []string{"10.0.0.9"}, doc.Hosts("db1"))

	assert.Equal(t, map[string]string{"ansible_ssh_host": "10.0.0.5", "ansible_ssh_user": "root"}, doc.Meta.HostVars["10.0.0.5"])
	assert.Equal(t, map[string]string{"ansible_ssh_host": "10.0.0.9", "ansible_ssh_user": "ubuntu"}, doc.Meta.HostVars["10.0.0.9"])
}

func TestBuildInventory_SharedGroupsMerge(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeList, DefaultGroup: "openstack"})

	instances := []models.Instance{
		createTestInstance("a", "a1", "", "10.0.0.1", "", nil),
		createTestInstance("b", "b1", "", "10.0.0.2", "", nil),
	}
	instanceMock.On("ListInstances", mock.Anything).Return(instances, nil)
	instanceMock.On("GetImageName", mock.Anything, "").Return("", errors.New("no image"))

	doc, err := service.BuildInventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"openstack", "a1", "b1"}, doc.Groups())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, doc.Hosts("openstack"))
	assert.Equal(t, []string{"10.0.0.1"}, doc.Hosts("a1"), "Alias groups must not leak between instances")
}

func TestBuildInventory_CustomSSHUsers(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{
		Mode:           ModeList,
		DefaultSSHUser: "admin",
		SSHUserRules:   []inventory.SSHUserRule{{Match: "fedora", User: "core"}},
	})

	instances := []models.Instance{
		createTestInstance("a", "a1", "", "10.0.0.1", "img-a", nil),
		createTestInstance("b", "b1", "", "10.0.0.2", "img-b", nil),
	}
	instanceMock.On("ListInstances", mock.Anything).Return(instances, nil)
	instanceMock.On("GetImageName", mock.Anything, "img-a").Return("Fedora-CoreOS", nil)
	instanceMock.On("GetImageName", mock.Anything, "img-b").Return("ubuntu", nil)

	doc, err := service.BuildInventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "core", doc.Meta.HostVars["10.0.0.1"]["ansible_ssh_user"])
	assert.Equal(t, "admin", doc.Meta.HostVars["10.0.0.2"]["ansible_ssh_user"])
}

func TestBuildInventory_ResolutionFailureAborts(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeList})

	instances := append(testInstances(), createTestInstance("id-lost", "lost", "", "", "", nil))
	instanceMock.On("ListInstances", mock.Anything).Return(instances, nil)
	instanceMock.On("GetImageName", mock.Anything, mock.Anything).Return("", errors.New("no image"))

	doc, err := service.BuildInventory(context.Background())

	assert.Nil(t, doc)
	assert.True(t, inventory.IsErrorCategory(err, inventory.ErrResolutionFailed))
}

func TestBuildInventory_FetchError(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeList})

	expectedErr := errors.New("compute API unavailable")
	instanceMock.On("ListInstances", mock.Anything).Return(nil, expectedErr)

	doc, err := service.BuildInventory(context.Background())

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, expectedErr)
	instanceMock.AssertNotCalled(t, "GetImageName", mock.Anything, mock.Anything)
}

func TestBuildHostVars(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeHost})
	instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)

	vars, err := service.BuildHostVars(context.Background(), "db1")
	require.NoError(t, err)

	assert.Equal(t, "id-db1", vars["os_id"])
	assert.Equal(t, "db1", vars["os_name"])
	assert.Contains(t, vars, "os_accessipv4")
	assert.NotContains(t, vars, "os_manager")
	for key := range vars {
		assert.Regexp(t, `^os_`, key)
	}
}

func TestBuildHostVars_MatchByAccessIP(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeHost})
	instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)

	vars, err := service.BuildHostVars(context.Background(), "10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, "db1", vars["os_name"])

	partial, err := service.BuildHostVars(context.Background(), "10.0.0")
	require.NoError(t, err)
	assert.Empty(t, partial, "Access IP must match exactly")
}

func TestBuildHostVars_LaterMatchOverwrites(t *testing.T) {
	service, instanceMock, _ := setupServiceWithMocks(t, Config{Mode: ModeHost})

	first := createTestInstance("id-1", "web1", "10.0.0.1", "", "", nil)
	first.Attributes["key_name"] = "deploy"
	second := createTestInstance("id-2", "web2", "10.0.0.2", "", "", nil)
	instanceMock.On("ListInstances", mock.Anything).Return([]models.Instance{first, second}, nil)

	vars, err := service.BuildHostVars(context.Background(), "web")
	require.NoError(t, err)

	assert.Equal(t, "id-2", vars["os_id"])
	assert.Equal(t, "web2", vars["os_name"])
	assert.Equal(t, "deploy", vars["os_key_name"], "Keys only the earlier match had are kept")
}

func TestRun_List(t *testing.T) {
	service, instanceMock, reportMock := setupServiceWithMocks(t, Config{Mode: ModeList})

	instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)
	instanceMock.On("GetImageName", mock.Anything, mock.Anything).Return("", errors.New("no image"))
	reportMock.On("PrintInventory", mock.MatchedBy(func(doc *inventory.Document) bool {
		return len(doc.Groups()) == 5
	})).Return(nil)

	assert.NoError(t, service.Run(context.Background()))
}

func TestRun_Host(t *testing.T) {
	service, instanceMock, reportMock := setupServiceWithMocks(t, Config{Mode: ModeHost, HostToken: "nomatch"})

	instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)
	reportMock.On("PrintHostVars", inventory.HostVars{}).Return(nil)

	assert.NoError(t, service.Run(context.Background()))
}

func TestRun_NothingPrintedOnFailure(t *testing.T) {
	service, instanceMock, reportMock := setupServiceWithMocks(t, Config{Mode: ModeList})

	instanceMock.On("ListInstances", mock.Anything).Return([]models.Instance{
		createTestInstance("id-lost", "lost", "", "", "", nil),
	}, nil)

	err := service.Run(context.Background())

	assert.Error(t, err)
	reportMock.AssertNotCalled(t, "PrintInventory", mock.Anything)
}

func TestRun_ListOutputIsStable(t *testing.T) {
	render := func() string {
		instanceMock := instanceMocks.NewInstanceServiceAPI(t)
		instanceMock.On("ListInstances", mock.Anything).Return(testInstances(), nil)
		instanceMock.On("GetImageName", mock.Anything, mock.Anything).Return("CentOS 7", nil)

		var buf bytes.Buffer
		service := NewService(Config{Mode: ModeList}, instanceMock, report.DefaultPrinter{Out: &buf}, logging.NewMockLogger())
		require.NoError(t, service.Run(context.Background()))
		return buf.String()
	}

	first := render()
	assert.Equal(t, first, render(), "Repeated runs must produce identical output")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &decoded))
	assert.Equal(t, []any{"10.0.0.5"}, decoded["app"])
	meta := decoded["_meta"].(map[string]any)["hostvars"].(map[string]any)
	assert.Equal(t, map[string]any{"ansible_ssh_host": "10.0.0.9", "ansible_ssh_user": "cloud-user"}, meta["10.0.0.9"])
}
