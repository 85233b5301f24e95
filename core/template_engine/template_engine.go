package template_engine

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/modelgen/modelgen/core/cache"
	"github.com/modelgen/modelgen/core/logger"
	"github.com/modelgen/modelgen/core/shared"
)

type TemplateEngine struct {
	funcMap template.FuncMap
}

var GlobalFuncMap = template.FuncMap{}

func RegisterGlobalFunc(name string, fn interface{}) {
	GlobalFuncMap[name] = fn
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     shared.ToTitle,
		"snake":     shared.ToSnake,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"split":     strings.Split,
		"join":      strings.Join,

		"now":        time.Now,
		"formatTime": func(layout string, t time.Time) string { return t.Format(layout) },
		"date":       func(t time.Time) string { return t.Format("2006-01-02") },
		"datetime":   func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },

		"uuid": uuid.NewString,

		"default": func(def, val interface{}) interface{} {
			if val == nil || val == "" {
				return def
			}
			return val
		},
		"not": func(b bool) bool { return !b },
	}
}

func NewTemplateEngine() *TemplateEngine {
	funcMap := template.FuncMap{}

	for name, fn := range getDefaultFuncMap() {
		funcMap[name] = fn
	}
	for name, fn := range GlobalFuncMap {
		funcMap[name] = fn
	}

	return &TemplateEngine{
		funcMap: funcMap,
	}
}

func (te *TemplateEngine) AddFunc(name string, fn interface{}) {
	te.funcMap[name] = fn
}

// Load resolves and parses the template behind a ref. When customDir holds a
// file with the same basename as the default template, the override wins.
// Parsed templates are cached per source path.
func (te *TemplateEngine) Load(ref TemplateRef, customDir string) (*template.Template, error) {
	if ref.IsDirectory() {
		return nil, fmt.Errorf("cannot load template from directory reference: %s", ref.Path)
	}
	if ref.Path == "" {
		return nil, fmt.Errorf("template reference has no path")
	}

	key := "embed:" + ref.Path
	override := ""
	if customDir != "" {
		candidate := filepath.Join(customDir, filepath.Base(ref.Path))
		if _, err := os.Stat(candidate); err == nil {
			override = candidate
			key = "file:" + candidate
		}
	}

	templateCache := cache.GetCache()
	if tmpl, ok := templateCache.Get(key); ok {
		return tmpl, nil
	}

	var content []byte
	var err error
	if override != "" {
		logger.Debug("Using template override %s for %s", override, ref.Path)
		content, err = os.ReadFile(override)
	} else {
		content, err = TemplateFS.ReadFile(filepath.Join("templates", ref.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", ref.Path, err)
	}

	tmpl, err := template.New(filepath.Base(ref.Path)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", ref.Path, err)
	}

	templateCache.Set(key, tmpl)
	return tmpl, nil
}

// Render executes the template behind a ref and returns the produced text.
func (te *TemplateEngine) Render(ref TemplateRef, customDir string, data interface{}) (string, error) {
	tmpl, err := te.Load(ref, customDir)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", ref.Path, err)
	}
	return buf.String(), nil
}

// GenerateFile renders a template ref straight to a file on disk.
func (te *TemplateEngine) GenerateFile(ref TemplateRef, outputPath string, data interface{}) error {
	content, err := te.Render(ref, "", data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}
	return nil
}

// GenerateFolder walks a directory ref and materializes every entry under
// outputDir, executing .tmpl files and copying the rest verbatim.
func (te *TemplateEngine) GenerateFolder(ref TemplateRef, outputDir string, data interface{}) error {
	if ref.IsFile() {
		return fmt.Errorf("cannot generate folder from file reference: %s", ref.Path)
	}

	templateDir := filepath.Join("templates", ref.Path)
	logger.Debug("Generating folder from template reference: %s", templateDir)

	return fs.WalkDir(TemplateFS, templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templateDir {
			return nil
		}

		relPath, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		outputPath := filepath.Join(outputDir, relPath)

		if d.IsDir() {
			return os.MkdirAll(outputPath, os.ModePerm)
		}
		return te.generateFileFromPath(path, outputPath, data)
	})
}

func (te *TemplateEngine) generateFileFromPath(templatePath, outputPath string, data interface{}) error {
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if !strings.HasSuffix(templatePath, ".tmpl") {
		return os.WriteFile(outputPath, content, 0644)
	}

	outputPath = strings.TrimSuffix(outputPath, ".tmpl")
	tmpl, err := template.New(filepath.Base(templatePath)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer outputFile.Close()

	if err := tmpl.Execute(outputFile, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}
	return nil
}
