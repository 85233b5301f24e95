// Package generator drives a full generation pass: schema in, one Python
// source file out.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/modelgen/modelgen/core/cache"
	"github.com/modelgen/modelgen/core/config"
	"github.com/modelgen/modelgen/core/imports"
	"github.com/modelgen/modelgen/core/logger"
	"github.com/modelgen/modelgen/core/model"
	"github.com/modelgen/modelgen/core/schema"
	"github.com/modelgen/modelgen/core/template_engine"
	"github.com/modelgen/modelgen/core/version"
)

// pydanticFieldImport is needed whenever a generated field carries an alias.
var pydanticFieldImport = imports.Import{From: "pydantic", Name: "Field"}

type ModelGenerator struct {
	cfg    *config.Config
	engine *template_engine.TemplateEngine
	runID  string
}

func NewModelGenerator(cfg *config.Config) *ModelGenerator {
	return &ModelGenerator{
		cfg:    cfg,
		engine: template_engine.NewTemplateEngine(),
		runID:  uuid.NewString(),
	}
}

// Generate runs one pass: load schema, build models, order them so
// referenced classes come before their dependents, render, and write the
// output file.
func (g *ModelGenerator) Generate() error {
	doc, err := schema.Load(g.cfg.Schema)
	if err != nil {
		return err
	}

	models, err := g.buildModels(doc)
	if err != nil {
		return err
	}

	ordered := orderByReferences(models)
	content, err := g.assemble(ordered)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(g.cfg.Output), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(g.cfg.Output, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", g.cfg.Output, err)
	}

	logger.Info("Generated %s with %d models (run %s)", g.cfg.Output, len(ordered), g.runID)
	cache.GetCache().LogStats()
	return nil
}

func (g *ModelGenerator) buildModels(doc *schema.Document) ([]*model.Model, error) {
	models := make([]*model.Model, 0, len(doc.Models))

	for _, def := range doc.Models {
		kind, err := model.KindByName(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", def.Name, err)
		}

		fields := make([]*model.Field, 0, len(def.Fields))
		for _, fieldDef := range def.Fields {
			fields = append(fields, model.NewField(model.FieldSpec{
				Name:     fieldDef.Name,
				Alias:    fieldDef.Alias,
				Default:  fieldDef.Default,
				Required: fieldDef.Required,
				Atoms:    doc.ResolveField(fieldDef),
				IsList:   fieldDef.Repeated,
				IsUnion:  fieldDef.Union,
			}))
		}

		m, err := model.New(model.Spec{
			Kind:              kind,
			Name:              def.Name,
			Fields:            fields,
			Decorators:        def.Decorators,
			BaseClasses:       def.BaseClasses,
			CustomBaseClass:   g.cfg.Codegen.BaseClass,
			CustomTemplateDir: g.cfg.Codegen.TemplateDir,
			ExtraTemplateData: g.cfg.Codegen.ExtraTemplateData,
			AutoImport:        g.cfg.Codegen.AutoImportEnabled(),
			ReferenceClasses:  def.References,
			Engine:            g.engine,
		})
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	return models, nil
}

func (g *ModelGenerator) assemble(models []*model.Model) (string, error) {
	impSet := imports.NewSet()
	bodies := make([]string, 0, len(models))

	for _, m := range models {
		body, err := m.Render()
		if err != nil {
			return "", err
		}
		bodies = append(bodies, strings.TrimRight(body, "\n"))

		impSet.Append(m.Imports...)
		for _, field := range m.Fields {
			if field.NeedsAlias() {
				impSet.Add(pydanticFieldImport)
			}
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# generated by modelgen %s\n", version.Version))
	b.WriteString(fmt.Sprintf("# schema: %s\n", g.cfg.Schema))

	if block := imports.Render(impSet.All()); block != "" {
		b.WriteString("\n")
		b.WriteString(block)
		b.WriteString("\n")
	}

	for _, body := range bodies {
		b.WriteString("\n\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// orderByReferences sorts models so every locally-defined reference class is
// emitted before its dependents. The sort is stable; cycles fall back to
// input order.
func orderByReferences(models []*model.Model) []*model.Model {
	defined := make(map[string]bool, len(models))
	for _, m := range models {
		defined[m.Name] = true
		defined[m.ClassName] = true
	}

	emitted := make(map[string]bool, len(models))
	remaining := append([]*model.Model{}, models...)
	ordered := make([]*model.Model, 0, len(models))

	for len(remaining) > 0 {
		picked := -1
		for i, m := range remaining {
			if referencesSatisfied(m, defined, emitted) {
				picked = i
				break
			}
		}
		if picked < 0 {
			logger.Warn("Reference cycle among remaining models; keeping schema order")
			picked = 0
		}

		m := remaining[picked]
		emitted[m.Name] = true
		emitted[m.ClassName] = true
		ordered = append(ordered, m)
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}

	return ordered
}

func referencesSatisfied(m *model.Model, defined, emitted map[string]bool) bool {
	for _, ref := range m.ReferenceClasses {
		if ref == m.Name || ref == m.ClassName {
			continue
		}
		if defined[ref] && !emitted[ref] {
			return false
		}
	}
	return true
}
