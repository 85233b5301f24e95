package model

import (
	"regexp"
	"testing"

	"github.com/modelgen/modelgen/core/imports"
	"github.com/modelgen/modelgen/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeTypeHint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		atoms    []types.Atom
		isList   bool
		isUnion  bool
		required bool
		hint     string
		imports  []imports.Import
	}{
		{
			name:     "RequiredSingleAtom",
			atoms:    []types.Atom{types.Scalar("str")},
			required: true,
			hint:     "str",
		},
		{
			name:     "OptionalSingleAtom",
			atoms:    []types.Atom{types.Scalar("str")},
			required: false,
			hint:     "Optional[str]",
			imports:  []imports.Import{imports.ImportOptional},
		},
		{
			name:     "OptionalNoAtoms",
			required: false,
			hint:     "Optional",
			imports:  []imports.Import{imports.ImportOptional},
		},
		{
			name:     "RequiredNoAtoms",
			required: true,
			hint:     "",
		},
		{
			name:     "RepeatedNoAtoms",
			isList:   true,
			required: true,
			hint:     "List",
			imports:  []imports.Import{imports.ImportList},
		},
		{
			name:     "RepeatedSingleAtom",
			atoms:    []types.Atom{types.Scalar("int")},
			isList:   true,
			required: true,
			hint:     "List[int]",
			imports:  []imports.Import{imports.ImportList},
		},
		{
			name:     "UnionNotRepeated",
			atoms:    []types.Atom{types.Scalar("str"), types.Scalar("int")},
			required: true,
			hint:     "Union[str, int]",
			imports:  []imports.Import{imports.ImportUnion},
		},
		{
			name:     "OptionalUnion",
			atoms:    []types.Atom{types.Scalar("str"), types.Scalar("int")},
			required: false,
			hint:     "Optional[Union[str, int]]",
			imports:  []imports.Import{imports.ImportUnion, imports.ImportOptional},
		},
		{
			name:     "RepeatedUnion",
			atoms:    []types.Atom{types.Scalar("A"), types.Scalar("B")},
			isList:   true,
			isUnion:  true,
			required: true,
			hint:     "List[Union[A, B]]",
			imports:  []imports.Import{imports.ImportList, imports.ImportUnion},
		},
		{
			name:     "RepeatedMultipleAtomsNoUnionFlag",
			atoms:    []types.Atom{types.Scalar("A"), types.Scalar("B")},
			isList:   true,
			required: true,
			hint:     "List[A, B]",
			imports:  []imports.Import{imports.ImportList},
		},
		{
			name:     "OptionalRepeatedNoAtoms",
			isList:   true,
			required: false,
			hint:     "Optional[List]",
			imports:  []imports.Import{imports.ImportList, imports.ImportOptional},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hint, imps := composeTypeHint(tc.atoms, tc.isList, tc.isUnion, tc.required)
			assert.Equal(t, tc.hint, hint)
			assert.Equal(t, tc.imports, imps)
		})
	}
}

func TestComposeTypeHintIsIdempotent(t *testing.T) {
	t.Parallel()

	atoms := []types.Atom{types.Scalar("str"), types.Scalar("int")}
	hint1, imps1 := composeTypeHint(atoms, true, true, false)
	hint2, imps2 := composeTypeHint(atoms, true, true, false)

	assert.Equal(t, hint1, hint2)
	assert.Equal(t, imps1, imps2)
}

func TestComposeTypeHintRequiredAddsNoOptional(t *testing.T) {
	t.Parallel()

	_, imps := composeTypeHint([]types.Atom{types.Scalar("int")}, false, false, true)
	assert.Empty(t, imps)
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	identifier := regexp.MustCompile(`^[A-Za-z0-9_]*$`)

	cases := []struct {
		input    string
		expected string
	}{
		{input: "name", expected: "name"},
		{input: "full-name", expected: "full_name"},
		{input: "a b.c", expected: "a_b_c"},
		{input: "__root__", expected: "__root__"},
		{input: "weird!@#", expected: "weird___"},
		{input: "", expected: ""},
	}

	for _, tc := range cases {
		got := SanitizeName(tc.input)
		assert.Equal(t, tc.expected, got)
		assert.Regexp(t, identifier, got)
		assert.Len(t, got, len(tc.input))
	}
}

func TestNewFieldAliasDefaultsToOriginalName(t *testing.T) {
	t.Parallel()

	field := NewField(FieldSpec{
		Name:     "full-name",
		Required: true,
		Atoms:    []types.Atom{types.Scalar("str")},
	})

	assert.Equal(t, "full_name", field.Name)
	assert.Equal(t, "full-name", field.Alias)
	assert.True(t, field.NeedsAlias())
}

func TestNewFieldExplicitAliasWins(t *testing.T) {
	t.Parallel()

	field := NewField(FieldSpec{
		Name:  "name",
		Alias: "externalName",
		Atoms: []types.Atom{types.Scalar("str")},
	})

	assert.Equal(t, "externalName", field.Alias)
}

func TestNewFieldCollectsAtomImportsAndUnresolvedNames(t *testing.T) {
	t.Parallel()

	dt := imports.Import{From: "datetime", Name: "datetime"}
	field := NewField(FieldSpec{
		Name:     "when",
		Required: false,
		Atoms: []types.Atom{
			types.Imported("datetime", dt),
			types.Reference("Event"),
		},
	})

	require.Equal(t, "Optional[Union[datetime, Event]]", field.TypeHint)
	assert.Equal(t, []string{"Event"}, field.UnresolvedNames)
	assert.Contains(t, field.Imports, dt)
	assert.Contains(t, field.Imports, imports.ImportUnion)
	assert.Contains(t, field.Imports, imports.ImportOptional)
}

func TestNewFieldDeduplicatesImports(t *testing.T) {
	t.Parallel()

	dt := imports.Import{From: "datetime", Name: "datetime"}
	field := NewField(FieldSpec{
		Name:     "span",
		Required: true,
		Atoms: []types.Atom{
			types.Imported("datetime", dt),
			types.Imported("datetime", dt),
		},
	})

	count := 0
	for _, imp := range field.Imports {
		if imp == dt {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
