package model

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/modelgen/modelgen/core/imports"
	"github.com/modelgen/modelgen/core/template_engine"
)

// Kind ties a class flavor to its template file and default base class.
type Kind struct {
	Name        string
	TemplateRef template_engine.TemplateRef
	BaseClass   string
}

var (
	KindBaseModel = Kind{
		Name:        "base_model",
		TemplateRef: template_engine.TEMPLATES.PYDANTIC.BASE_MODEL,
		BaseClass:   "pydantic.BaseModel",
	}
	KindRootModel = Kind{
		Name:        "root_model",
		TemplateRef: template_engine.TEMPLATES.PYDANTIC.ROOT_MODEL,
		BaseClass:   "pydantic.BaseModel",
	}
	KindEnum = Kind{
		Name:        "enum",
		TemplateRef: template_engine.TEMPLATES.PYDANTIC.ENUM,
		BaseClass:   "enum.Enum",
	}
)

// KindByName resolves a schema kind string; the empty string means base_model.
func KindByName(name string) (Kind, error) {
	switch name {
	case "", "base_model":
		return KindBaseModel, nil
	case "root_model":
		return KindRootModel, nil
	case "enum":
		return KindEnum, nil
	default:
		return Kind{}, fmt.Errorf("unknown model kind %q", name)
	}
}

// reservedTemplateKeys are the names the render contract owns; extra template
// data must not shadow them.
var reservedTemplateKeys = []string{"ClassName", "Fields", "Decorators", "BaseClass"}

// Spec carries everything needed to construct one Model.
type Spec struct {
	Kind              Kind
	Name              string
	Fields            []*Field
	Decorators        []string
	BaseClasses       []string
	CustomBaseClass   string
	CustomTemplateDir string
	ExtraTemplateData map[string]map[string]interface{}
	Imports           []imports.Import
	AutoImport        bool
	ReferenceClasses  []string
	Engine            *template_engine.TemplateEngine
}

// Model is one fully-resolved class definition, ready to render. It owns its
// fields; construction rewrites their type hints when the model name carries
// a module qualifier.
type Model struct {
	Kind             Kind
	Name             string
	ClassName        string
	Fields           []*Field
	Decorators       []string
	BaseClasses      []string
	BaseClass        string
	ReferenceClasses []string
	Imports          []imports.Import
	ExtraData        map[string]interface{}

	template *template.Template
}

// New builds a Model from a Spec. A kind without a template file and a
// template that cannot be read or parsed are both fatal configuration
// errors surfaced here, never deferred to render time.
func New(spec Spec) (*Model, error) {
	if spec.Kind.TemplateRef.Path == "" {
		return nil, fmt.Errorf("model kind %q has no template file defined", spec.Kind.Name)
	}

	engine := spec.Engine
	if engine == nil {
		engine = template_engine.NewTemplateEngine()
	}
	tmpl, err := engine.Load(spec.Kind.TemplateRef, spec.CustomTemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load template for model %s: %w", spec.Name, err)
	}

	m := &Model{
		Kind:       spec.Kind,
		Name:       spec.Name,
		Fields:     append([]*Field{}, spec.Fields...),
		Decorators: append([]string{}, spec.Decorators...),
		template:   tmpl,
	}

	var baseClasses []string
	for _, base := range spec.BaseClasses {
		if base != "" {
			baseClasses = append(baseClasses, base)
		}
	}
	m.BaseClasses = baseClasses

	var refs []string
	for _, base := range baseClasses {
		if base != spec.Kind.BaseClass {
			refs = append(refs, base)
		}
	}
	refs = append(refs, spec.ReferenceClasses...)

	impSet := imports.NewSet(spec.Imports...)

	if len(baseClasses) > 0 {
		m.BaseClass = strings.Join(baseClasses, ", ")
	} else {
		fullPath := spec.CustomBaseClass
		if fullPath == "" {
			fullPath = spec.Kind.BaseClass
		}
		if spec.AutoImport && fullPath != "" {
			impSet.Add(imports.FromFullPath(fullPath))
		}
		if idx := strings.LastIndex(fullPath, "."); idx >= 0 {
			m.BaseClass = fullPath[idx+1:]
		} else {
			m.BaseClass = fullPath
		}
	}

	className := spec.Name
	if idx := strings.LastIndex(spec.Name, "."); idx >= 0 {
		className = spec.Name[idx+1:]
		prefix := spec.Name[:idx] + "."
		// Same-module references need no qualifier; strip the first
		// occurrence only.
		if strings.HasPrefix(m.BaseClass, prefix) {
			m.BaseClass = strings.Replace(m.BaseClass, prefix, "", 1)
		}
		for _, field := range m.Fields {
			if field.TypeHint != "" && strings.Contains(field.TypeHint, prefix) {
				field.TypeHint = strings.Replace(field.TypeHint, prefix, "", 1)
			}
		}
	}
	m.ClassName = className

	m.ExtraData = map[string]interface{}{}
	if spec.ExtraTemplateData != nil {
		for key, value := range spec.ExtraTemplateData[spec.Name] {
			m.ExtraData[key] = value
		}
	}
	for _, reserved := range reservedTemplateKeys {
		if _, ok := m.ExtraData[reserved]; ok {
			return nil, fmt.Errorf("extra template data for model %s shadows reserved key %q", spec.Name, reserved)
		}
	}

	for _, field := range m.Fields {
		refs = append(refs, field.UnresolvedNames...)
	}
	m.ReferenceClasses = dedupStrings(refs)

	if spec.AutoImport {
		for _, field := range m.Fields {
			impSet.Append(field.Imports...)
		}
	}
	m.Imports = impSet.All()

	return m, nil
}

// Render executes the model's template and returns the produced source text.
func (m *Model) Render() (string, error) {
	data := map[string]interface{}{
		"ClassName":  m.ClassName,
		"Fields":     m.Fields,
		"Decorators": m.Decorators,
		"BaseClass":  m.BaseClass,
	}
	for key, value := range m.ExtraData {
		data[key] = value
	}

	var buf strings.Builder
	if err := m.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render model %s: %w", m.Name, err)
	}
	return buf.String(), nil
}

func dedupStrings(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, s := range list {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
