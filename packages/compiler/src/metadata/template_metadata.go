package metadata

import (
	"slices"

	"ngc-metadata/packages/compiler/src/core"
)

// TemplateConfig lists the fields of a CompileTemplateMetadata.
// Nil lists become empty lists; nil scalars stay absent.
type TemplateConfig struct {
	Encapsulation      *core.ViewEncapsulation
	Template           *string
	TemplateURL        *string
	Styles             []string
	StyleURLs          []string
	NgContentSelectors []string
}

// CompileTemplateMetadata describes the view resource of a component
type CompileTemplateMetadata struct {
	encapsulation      *core.ViewEncapsulation
	template           *string
	templateURL        *string
	styles             []string
	styleURLs          []string
	ngContentSelectors []string
}

// NewCompileTemplateMetadata creates a new CompileTemplateMetadata
func NewCompileTemplateMetadata(cfg TemplateConfig) *CompileTemplateMetadata {
	return &CompileTemplateMetadata{
		encapsulation:      clonePtr(cfg.Encapsulation),
		template:           clonePtr(cfg.Template),
		templateURL:        clonePtr(cfg.TemplateURL),
		styles:             cloneList(cfg.Styles),
		styleURLs:          cloneList(cfg.StyleURLs),
		ngContentSelectors: cloneList(cfg.NgContentSelectors),
	}
}

// Encapsulation returns the style encapsulation, nil meaning the compiler default
func (t *CompileTemplateMetadata) Encapsulation() *core.ViewEncapsulation {
	return clonePtr(t.encapsulation)
}

// Template returns the inline template, nil when absent
func (t *CompileTemplateMetadata) Template() *string { return clonePtr(t.template) }

// TemplateURL returns the template resource url, nil when absent
func (t *CompileTemplateMetadata) TemplateURL() *string { return clonePtr(t.templateURL) }

// Styles returns the inline stylesheets
func (t *CompileTemplateMetadata) Styles() []string { return slices.Clone(t.styles) }

// StyleURLs returns the stylesheet urls
func (t *CompileTemplateMetadata) StyleURLs() []string { return slices.Clone(t.styleURLs) }

// NgContentSelectors returns the content projection selectors in template order
func (t *CompileTemplateMetadata) NgContentSelectors() []string {
	return slices.Clone(t.ngContentSelectors)
}

// ToStructured converts the template to a plain record
func (t *CompileTemplateMetadata) ToStructured() map[string]any {
	data := map[string]any{
		"styles":             slices.Clone(t.styles),
		"styleUrls":          slices.Clone(t.styleURLs),
		"ngContentSelectors": slices.Clone(t.ngContentSelectors),
	}
	if t.encapsulation != nil {
		data["encapsulation"] = t.encapsulation.String()
	}
	putOptional(data, "template", t.template)
	putOptional(data, "templateUrl", t.templateURL)
	return data
}

// CompileTemplateMetadataFromStructured rebuilds a template from ToStructured output
func CompileTemplateMetadataFromStructured(data map[string]any) (*CompileTemplateMetadata, error) {
	encapsulation, err := optionalEnum(data, "encapsulation", core.ParseViewEncapsulation, core.ViewEncapsulationFromOrdinal)
	if err != nil {
		return nil, err
	}
	cfg := TemplateConfig{Encapsulation: encapsulation}
	if cfg.Template, err = optionalString(data, "template"); err != nil {
		return nil, err
	}
	if cfg.TemplateURL, err = optionalString(data, "templateUrl"); err != nil {
		return nil, err
	}
	if cfg.Styles, _, err = stringList(data, "styles"); err != nil {
		return nil, err
	}
	if cfg.StyleURLs, _, err = stringList(data, "styleUrls"); err != nil {
		return nil, err
	}
	if cfg.NgContentSelectors, _, err = stringList(data, "ngContentSelectors"); err != nil {
		return nil, err
	}
	return NewCompileTemplateMetadata(cfg), nil
}
