package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "modelgen", cfg.AppName)
	assert.Equal(t, "models.yaml", cfg.Schema)
	assert.True(t, cfg.Codegen.AutoImportEnabled())
	assert.Equal(t, 300, cfg.Watch.Debounce())
}

func TestLoadFallsBackToDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
app_name: petstore
schema: schemas/pets.yaml
output: gen/models.py
codegen:
  auto_import: false
  base_class: my_pkg.Base
  extra_template_data:
    Pet:
      ConfigBody: "allow_mutation = False"
watch:
  debounce_ms: 50
  exclude:
    - gen
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modelgen.yaml"), []byte(content), 0644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "petstore", cfg.AppName)
	assert.Equal(t, "schemas/pets.yaml", cfg.Schema)
	assert.Equal(t, "gen/models.py", cfg.Output)
	assert.False(t, cfg.Codegen.AutoImportEnabled())
	assert.Equal(t, "my_pkg.Base", cfg.Codegen.BaseClass)
	assert.Equal(t, "allow_mutation = False", cfg.Codegen.ExtraTemplateData["Pet"]["ConfigBody"])
	assert.Equal(t, 50, cfg.Watch.Debounce())
	assert.Equal(t, []string{"gen"}, cfg.Watch.Exclude)
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modelgen.yaml"), []byte("[unclosed"), 0644))
	t.Chdir(dir)

	_, err := Load()
	require.Error(t, err)
}
