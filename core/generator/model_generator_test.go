package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelgen/modelgen/core/config"
	"github.com/modelgen/modelgen/core/model"
	"github.com/modelgen/modelgen/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildModel(t *testing.T, name string, fields ...*model.Field) *model.Model {
	t.Helper()
	m, err := model.New(model.Spec{
		Kind:   model.KindBaseModel,
		Name:   name,
		Fields: fields,
	})
	require.NoError(t, err)
	return m
}

func TestOrderByReferencesPutsDependenciesFirst(t *testing.T) {
	t.Parallel()

	person := buildModel(t, "Person", model.NewField(model.FieldSpec{
		Name:     "pet",
		Required: true,
		Atoms:    []types.Atom{types.Reference("Pet")},
	}))
	pet := buildModel(t, "Pet")

	ordered := orderByReferences([]*model.Model{person, pet})
	require.Len(t, ordered, 2)
	assert.Equal(t, "Pet", ordered[0].Name)
	assert.Equal(t, "Person", ordered[1].Name)
}

func TestOrderByReferencesIgnoresExternalNames(t *testing.T) {
	t.Parallel()

	person := buildModel(t, "Person", model.NewField(model.FieldSpec{
		Name:     "shadow",
		Required: true,
		Atoms:    []types.Atom{types.Reference("external.Thing")},
	}))
	pet := buildModel(t, "Pet")

	ordered := orderByReferences([]*model.Model{person, pet})
	assert.Equal(t, "Person", ordered[0].Name)
	assert.Equal(t, "Pet", ordered[1].Name)
}

func TestOrderByReferencesSurvivesCycles(t *testing.T) {
	t.Parallel()

	a := buildModel(t, "A", model.NewField(model.FieldSpec{
		Name:     "b",
		Required: true,
		Atoms:    []types.Atom{types.Reference("B")},
	}))
	b := buildModel(t, "B", model.NewField(model.FieldSpec{
		Name:     "a",
		Required: true,
		Atoms:    []types.Atom{types.Reference("A")},
	}))

	ordered := orderByReferences([]*model.Model{a, b})
	require.Len(t, ordered, 2)
	assert.Equal(t, "A", ordered[0].Name)
	assert.Equal(t, "B", ordered[1].Name)
}

const generateSchema = `
models:
  - name: Person
    fields:
      - name: full-name
        type: string
        required: true
      - name: pets
        type: Pet
        repeated: true
        required: true

  - name: Pet
    fields:
      - name: name
        type: string
        required: true
      - name: birthday
        type: datetime
`

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "models.yaml")
	outputPath := filepath.Join(dir, "out", "models.py")
	require.NoError(t, os.WriteFile(schemaPath, []byte(generateSchema), 0644))

	cfg := config.Default()
	cfg.Schema = schemaPath
	cfg.Output = outputPath

	gen := NewModelGenerator(cfg)
	require.NoError(t, gen.Generate())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# generated by modelgen"))
	assert.Contains(t, content, "from pydantic import BaseModel, Field")
	assert.Contains(t, content, "from typing import List, Optional")
	assert.Contains(t, content, "from datetime import datetime")

	assert.Contains(t, content, "class Pet(BaseModel):\n    name: str\n    birthday: Optional[datetime] = None\n")
	assert.Contains(t, content, "class Person(BaseModel):\n    full_name: str = Field(..., alias='full-name')\n    pets: List[Pet]\n")

	// Pet is referenced by Person, so it must be emitted first.
	assert.Less(t, strings.Index(content, "class Pet"), strings.Index(content, "class Person"))
}

func TestGenerateFailsOnMissingSchema(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Schema = filepath.Join(t.TempDir(), "missing.yaml")
	cfg.Output = filepath.Join(t.TempDir(), "models.py")

	gen := NewModelGenerator(cfg)
	err := gen.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}
