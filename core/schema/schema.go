// Package schema loads the YAML model descriptions modelgen consumes and
// resolves field type names into atoms.
package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/modelgen/modelgen/core/logger"
	"github.com/modelgen/modelgen/core/types"
	"gopkg.in/yaml.v3"
)

type Document struct {
	Models []ModelDef `yaml:"models"`

	classNames map[string]bool
}

type ModelDef struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	BaseClasses []string   `yaml:"base_classes"`
	Decorators  []string   `yaml:"decorators"`
	References  []string   `yaml:"references"`
	Fields      []FieldDef `yaml:"fields"`
}

type FieldDef struct {
	Name     string   `yaml:"name"`
	Alias    string   `yaml:"alias"`
	Type     string   `yaml:"type"`
	Types    []string `yaml:"types"`
	Required bool     `yaml:"required"`
	Repeated bool     `yaml:"repeated"`
	Union    bool     `yaml:"union"`
	Default  string   `yaml:"default"`
}

// TypeNames merges the singular and plural spellings, order preserved.
func (f FieldDef) TypeNames() []string {
	var names []string
	if f.Type != "" {
		names = append(names, f.Type)
	}
	names = append(names, f.Types...)
	return names
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema yaml: %w", err)
	}

	doc.classNames = make(map[string]bool, len(doc.Models))
	for _, def := range doc.Models {
		if def.Name == "" {
			return nil, fmt.Errorf("schema contains a model with no name")
		}
		doc.classNames[def.Name] = true
		if idx := strings.LastIndex(def.Name, "."); idx >= 0 {
			doc.classNames[def.Name[idx+1:]] = true
		}
	}

	return &doc, nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", path, err)
	}
	logger.Debug("Loaded schema %s with %d models", path, len(doc.Models))
	return doc, nil
}

// Defines reports whether the document declares a model under the given
// name, dotted or bare.
func (d *Document) Defines(name string) bool {
	return d.classNames[name]
}

// ResolveType turns one schema type name into an atom. Builtin scalars
// resolve directly; names declared in this document, or unknown entirely,
// become unresolved forward references.
func (d *Document) ResolveType(name string) types.Atom {
	if atom, ok := types.Builtin(name); ok {
		return atom
	}
	if !d.Defines(name) {
		logger.Warn("Type %q is not a builtin and not defined in the schema; treating it as a forward reference", name)
	}
	return types.Reference(name)
}

// ResolveField resolves every type name of a field, order preserved.
func (d *Document) ResolveField(field FieldDef) []types.Atom {
	names := field.TypeNames()
	atoms := make([]types.Atom, 0, len(names))
	for _, name := range names {
		atoms = append(atoms, d.ResolveType(name))
	}
	return atoms
}
