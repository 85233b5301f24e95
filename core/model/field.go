// Package model implements the type-hint composition and model construction
// that turn resolved field descriptions into renderable class definitions.
package model

import (
	"regexp"
	"strings"

	"github.com/modelgen/modelgen/core/imports"
	"github.com/modelgen/modelgen/core/types"
)

const (
	hintList     = "List"
	hintUnion    = "Union"
	hintOptional = "Optional"
)

var nonIdentChars = regexp.MustCompile(`\W`)

// SanitizeName replaces every character outside [A-Za-z0-9_] with an
// underscore. Any input yields a usable identifier, so naming is a
// normalization concern, never an error.
func SanitizeName(name string) string {
	return nonIdentChars.ReplaceAllString(name, "_")
}

// FieldSpec is the raw input for one model attribute, as produced by the
// schema layer.
type FieldSpec struct {
	Name     string
	Alias    string
	Default  string
	Required bool
	Atoms    []types.Atom
	IsList   bool
	IsUnion  bool
}

// Field is a resolved model attribute. Name is sanitized, Alias keeps the
// original external name, TypeHint is the composed type expression and
// Imports carries everything the hint needs. Fields are built once and owned
// by exactly one Model.
type Field struct {
	Name            string
	Alias           string
	Default         string
	Required        bool
	Atoms           []types.Atom
	IsList          bool
	IsUnion         bool
	TypeHint        string
	Imports         []imports.Import
	UnresolvedNames []string
}

func NewField(spec FieldSpec) *Field {
	field := &Field{
		Name:     SanitizeName(spec.Name),
		Alias:    spec.Alias,
		Default:  spec.Default,
		Required: spec.Required,
		Atoms:    append([]types.Atom{}, spec.Atoms...),
		IsList:   spec.IsList,
		IsUnion:  spec.IsUnion,
	}

	if field.Alias == "" && spec.Name != "" {
		field.Alias = spec.Name
	}

	impSet := imports.NewSet()
	for _, atom := range field.Atoms {
		if atom.IsUnresolved {
			field.UnresolvedNames = append(field.UnresolvedNames, atom.TypeHint)
		}
		impSet.Append(atom.Imports...)
	}

	hint, composed := composeTypeHint(field.Atoms, field.IsList, field.IsUnion, field.Required)
	field.TypeHint = hint
	impSet.Append(composed...)
	field.Imports = impSet.All()

	return field
}

// NeedsAlias reports whether the generated field must carry its external
// name separately, i.e. sanitization or an explicit alias changed it.
func (f *Field) NeedsAlias() bool {
	return f.Alias != "" && f.Alias != f.Name
}

// composeTypeHint derives the textual type expression for a field and the
// imports that expression implies. It is pure: the same inputs always yield
// the same hint and import list.
//
// An empty hint means "no type expression"; callers must never render an
// empty bracket pair around it.
func composeTypeHint(atoms []types.Atom, isList, isUnion, required bool) (string, []imports.Import) {
	var imps []imports.Import

	hints := make([]string, len(atoms))
	for i, atom := range atoms {
		hints[i] = atom.TypeHint
	}
	joined := strings.Join(hints, ", ")

	var hint string
	switch {
	case joined == "":
		if isList {
			imps = append(imps, imports.ImportList)
			hint = hintList
		}
	case len(atoms) == 1:
		if isList {
			imps = append(imps, imports.ImportList)
			hint = hintList + "[" + joined + "]"
		} else {
			hint = joined
		}
	default:
		if isList {
			imps = append(imps, imports.ImportList)
			if isUnion {
				imps = append(imps, imports.ImportUnion)
				hint = hintList + "[" + hintUnion + "[" + joined + "]]"
			} else {
				// Multiple atoms without the union flag stay a bare
				// comma-joined parameter list inside the container.
				hint = hintList + "[" + joined + "]"
			}
		} else {
			imps = append(imps, imports.ImportUnion)
			hint = hintUnion + "[" + joined + "]"
		}
	}

	if required {
		return hint, imps
	}

	imps = append(imps, imports.ImportOptional)
	if hint == "" {
		return hintOptional, imps
	}
	return hintOptional + "[" + hint + "]", imps
}
