package routedoc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routedoc"
)

const sampleTOML = `
service_name = "shop"
base_path = "/api"
host = "localhost:8080"
schemes = ["http", "https"]
title = "Shop API"
description = "Orders and users"
version = "1.2.0"

[contact]
name = "API Team"
email = "api@example.com"

[license]
name = "MIT"
url = "https://opensource.org/licenses/MIT"

[external_doc]
description = "Handbook"
url = "https://example.com/handbook"

[project]
module = "github.com/example/shop"
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routedoc.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := routedoc.LoadConfig(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.ServiceName)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, "localhost:8080", cfg.Host)
	assert.Equal(t, []string{"http", "https"}, cfg.Schemes)
	assert.Equal(t, "Shop API", cfg.Title)
	require.NotNil(t, cfg.Contact)
	assert.Equal(t, "api@example.com", cfg.Contact.Email)
	require.NotNil(t, cfg.License)
	assert.Equal(t, "MIT", cfg.License.Name)
	require.NotNil(t, cfg.ExternalDoc)
	assert.Equal(t, "Handbook", cfg.ExternalDoc.Description)
	require.NotNil(t, cfg.Project)
	assert.Equal(t, "github.com/example/shop", cfg.Project.Module)
	assert.Empty(t, cfg.DocPath, "defaults are applied by Finalize")
}

func TestLoadConfig_errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := routedoc.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid toml", func(t *testing.T) {
		t.Parallel()

		_, err := routedoc.LoadConfig(writeConfig(t, "title = \n"))
		require.ErrorIs(t, err, routedoc.ErrConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(c *routedoc.Config)
		wantErr bool
	}{
		"valid":                {mutate: func(*routedoc.Config) {}},
		"relative base path":   {mutate: func(c *routedoc.Config) { c.BasePath = "api" }, wantErr: true},
		"relative doc path":    {mutate: func(c *routedoc.Config) { c.DocPath = "doc" }, wantErr: true},
		"unknown scheme":       {mutate: func(c *routedoc.Config) { c.Schemes = []string{"ftp"} }, wantErr: true},
		"bad terms url":        {mutate: func(c *routedoc.Config) { c.TermsOfService = "not a url" }, wantErr: true},
		"bad contact email":    {mutate: func(c *routedoc.Config) { c.Contact = &routedoc.Contact{Email: "nope"} }, wantErr: true},
		"license without name": {mutate: func(c *routedoc.Config) { c.License = &routedoc.License{} }, wantErr: true},
		"external doc no url":  {mutate: func(c *routedoc.Config) { c.ExternalDoc = &routedoc.ExternalDoc{} }, wantErr: true},
		"project no module":    {mutate: func(c *routedoc.Config) { c.Project = &routedoc.Project{} }, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, routedoc.ErrConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

// Finalize reads the environment, so these tests do not run in parallel.
func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := routedoc.Config{BasePath: "/api", Host: "api.example.com"}
		require.NoError(t, cfg.Finalize())

		assert.Equal(t, routedoc.DefaultDocPath, cfg.DocPath)
		assert.Equal(t, []string{"http"}, cfg.Schemes)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(routedoc.EnvHost, "docs.example.com")
		t.Setenv(routedoc.EnvBasePath, "/v2")
		t.Setenv(routedoc.EnvVersion, "2.0.0")

		cfg := routedoc.Config{BasePath: "/api", Host: "localhost:8080", Version: "1.0.0"}
		require.NoError(t, cfg.Finalize())

		assert.Equal(t, "docs.example.com", cfg.Host)
		assert.Equal(t, "/v2", cfg.BasePath)
		assert.Equal(t, "2.0.0", cfg.Version)
	})

	t.Run("invalid environment value", func(t *testing.T) {
		t.Setenv(routedoc.EnvBasePath, "v2")

		cfg := routedoc.Config{BasePath: "/api"}
		require.ErrorIs(t, cfg.Finalize(), routedoc.ErrConfig)
	})
}
