package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS

type TemplateRef struct {
	Path  string
	IsDir bool
}

func (tr TemplateRef) IsFile() bool {
	return !tr.IsDir
}

func (tr TemplateRef) IsDirectory() bool {
	return tr.IsDir
}

// TEMPLATES is the registry of everything under templates/.
var TEMPLATES = struct {
	PYDANTIC struct {
		BASE_MODEL TemplateRef
		ROOT_MODEL TemplateRef
		ENUM       TemplateRef
	}
	INIT struct {
		Ref TemplateRef
	}
}{
	PYDANTIC: struct {
		BASE_MODEL TemplateRef
		ROOT_MODEL TemplateRef
		ENUM       TemplateRef
	}{
		BASE_MODEL: TemplateRef{Path: "pydantic/base_model.tmpl"},
		ROOT_MODEL: TemplateRef{Path: "pydantic/root_model.tmpl"},
		ENUM:       TemplateRef{Path: "pydantic/enum.tmpl"},
	},
	INIT: struct {
		Ref TemplateRef
	}{
		Ref: TemplateRef{Path: "init", IsDir: true},
	},
}
