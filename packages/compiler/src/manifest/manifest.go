package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ngc-metadata/packages/compiler/src/core"
	"ngc-metadata/packages/compiler/src/metadata"
)

var validate = validator.New()

// File is a directive manifest: the author-facing decorator arguments of a set of directives
type File struct {
	Path       string      `json:"-" yaml:"-" toml:"-"`
	Directives []Directive `json:"directives" yaml:"directives" toml:"directives" validate:"dive"`
}

// Directive is one manifest entry, written in decorator shorthand
type Directive struct {
	Name            string            `json:"name" yaml:"name" toml:"name" validate:"required"`
	ModuleID        *string           `json:"moduleId" yaml:"moduleId" toml:"moduleId"`
	Selector        *string           `json:"selector" yaml:"selector" toml:"selector"`
	ExportAs        *string           `json:"exportAs" yaml:"exportAs" toml:"exportAs"`
	IsComponent     *bool             `json:"isComponent" yaml:"isComponent" toml:"isComponent"`
	DynamicLoadable *bool             `json:"dynamicLoadable" yaml:"dynamicLoadable" toml:"dynamicLoadable"`
	ChangeDetection *string           `json:"changeDetection" yaml:"changeDetection" toml:"changeDetection"`
	Properties      []string          `json:"properties" yaml:"properties" toml:"properties"`
	Events          []string          `json:"events" yaml:"events" toml:"events"`
	Host            map[string]string `json:"host" yaml:"host" toml:"host"`
	LifecycleHooks  []string          `json:"lifecycleHooks" yaml:"lifecycleHooks" toml:"lifecycleHooks"`
	Template        *Template         `json:"template" yaml:"template" toml:"template"`
}

// Template is the view part of a component entry
type Template struct {
	Encapsulation      *string  `json:"encapsulation" yaml:"encapsulation" toml:"encapsulation"`
	Template           *string  `json:"template" yaml:"template" toml:"template"`
	TemplateURL        *string  `json:"templateUrl" yaml:"templateUrl" toml:"templateUrl"`
	Styles             []string `json:"styles" yaml:"styles" toml:"styles"`
	StyleURLs          []string `json:"styleUrls" yaml:"styleUrls" toml:"styleUrls"`
	NgContentSelectors []string `json:"ngContentSelectors" yaml:"ngContentSelectors" toml:"ngContentSelectors"`
}

// Load reads a manifest, choosing the decoder from the file extension (.json, .yaml, .yml, .toml)
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes manifest content in the format named by ext
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &f, nil
}

// ToConfig converts an entry into the normalizer's input. Enum names must be canonical.
func (d Directive) ToConfig() (metadata.DirectiveConfig, error) {
	name := d.Name
	cfg := metadata.DirectiveConfig{
		Type: metadata.NewCompileTypeMetadata(metadata.TypeConfig{
			Name:     &name,
			ModuleID: d.ModuleID,
		}),
		IsComponent:     d.IsComponent,
		DynamicLoadable: d.DynamicLoadable,
		Selector:        d.Selector,
		ExportAs:        d.ExportAs,
		Properties:      d.Properties,
		Events:          d.Events,
		Host:            d.Host,
	}

	if d.ChangeDetection != nil {
		strategy, err := core.ParseChangeDetectionStrategy(*d.ChangeDetection)
		if err != nil {
			return metadata.DirectiveConfig{}, fmt.Errorf("directive %s: %w", d.Name, err)
		}
		cfg.ChangeDetection = &strategy
	}

	if d.LifecycleHooks != nil {
		cfg.LifecycleHooks = make([]core.LifecycleHooks, len(d.LifecycleHooks))
		for i, hookName := range d.LifecycleHooks {
			hook, err := core.ParseLifecycleHooks(hookName)
			if err != nil {
				return metadata.DirectiveConfig{}, fmt.Errorf("directive %s: %w", d.Name, err)
			}
			cfg.LifecycleHooks[i] = hook
		}
	}

	if d.Template != nil {
		tmpl := metadata.TemplateConfig{
			Template:           d.Template.Template,
			TemplateURL:        d.Template.TemplateURL,
			Styles:             d.Template.Styles,
			StyleURLs:          d.Template.StyleURLs,
			NgContentSelectors: d.Template.NgContentSelectors,
		}
		if d.Template.Encapsulation != nil {
			encapsulation, err := core.ParseViewEncapsulation(*d.Template.Encapsulation)
			if err != nil {
				return metadata.DirectiveConfig{}, fmt.Errorf("directive %s: %w", d.Name, err)
			}
			tmpl.Encapsulation = &encapsulation
		}
		cfg.Template = metadata.NewCompileTemplateMetadata(tmpl)
	}

	return cfg, nil
}

// Normalize converts every entry and runs it through metadata.CreateDirectiveMetadata
func (f *File) Normalize() ([]*metadata.CompileDirectiveMetadata, error) {
	out := make([]*metadata.CompileDirectiveMetadata, 0, len(f.Directives))
	for _, d := range f.Directives {
		cfg, err := d.ToConfig()
		if err != nil {
			return nil, err
		}
		out = append(out, metadata.CreateDirectiveMetadata(cfg))
	}
	return out, nil
}
