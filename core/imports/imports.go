// Package imports tracks the symbols a generated Python file must import.
package imports

import (
	"sort"
	"strings"
)

// Import identifies one importable symbol as an (origin module, name) pair.
// Equality is structural, so Import values can key maps directly.
type Import struct {
	From string
	Name string
}

// Imports needed by the composed type hints in core/model.
var (
	ImportOptional = Import{From: "typing", Name: "Optional"}
	ImportList     = Import{From: "typing", Name: "List"}
	ImportUnion    = Import{From: "typing", Name: "Union"}
	ImportAny      = Import{From: "typing", Name: "Any"}
)

// FromFullPath splits a dotted path at its last dot, e.g.
// "pydantic.BaseModel" -> {From: "pydantic", Name: "BaseModel"}.
// A bare name becomes a plain "import <name>".
func FromFullPath(path string) Import {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return Import{Name: path}
	}
	return Import{From: path[:idx], Name: path[idx+1:]}
}

func (i Import) String() string {
	if i.From == "" {
		return "import " + i.Name
	}
	return "from " + i.From + " import " + i.Name
}

// Set is an ordered, deduplicating collection of imports. Insertion order is
// kept so repeated accumulation stays deterministic.
type Set struct {
	order []Import
	seen  map[Import]bool
}

func NewSet(imps ...Import) *Set {
	s := &Set{seen: make(map[Import]bool)}
	s.Append(imps...)
	return s
}

func (s *Set) Add(imp Import) {
	if imp.Name == "" {
		return
	}
	if s.seen[imp] {
		return
	}
	s.seen[imp] = true
	s.order = append(s.order, imp)
}

func (s *Set) Append(imps ...Import) {
	for _, imp := range imps {
		s.Add(imp)
	}
}

func (s *Set) Contains(imp Import) bool {
	return s.seen[imp]
}

// All returns the imports in insertion order. The slice is a copy.
func (s *Set) All() []Import {
	out := make([]Import, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set) Len() int {
	return len(s.order)
}

// Render emits a consolidated import block: plain imports first, then
// "from X import A, B" lines, each group sorted for stable output.
func Render(imps []Import) string {
	plain := map[string]bool{}
	grouped := map[string][]string{}

	for _, imp := range imps {
		if imp.Name == "" {
			continue
		}
		if imp.From == "" {
			plain[imp.Name] = true
			continue
		}
		if !containsStr(grouped[imp.From], imp.Name) {
			grouped[imp.From] = append(grouped[imp.From], imp.Name)
		}
	}

	var lines []string
	plainNames := make([]string, 0, len(plain))
	for name := range plain {
		plainNames = append(plainNames, name)
	}
	sort.Strings(plainNames)
	for _, name := range plainNames {
		lines = append(lines, "import "+name)
	}

	modules := make([]string, 0, len(grouped))
	for module := range grouped {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		names := grouped[module]
		sort.Strings(names)
		lines = append(lines, "from "+module+" import "+strings.Join(names, ", "))
	}

	return strings.Join(lines, "\n")
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
