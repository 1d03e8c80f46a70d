package metadata

import (
	"fmt"
	"slices"

	"ngc-metadata/packages/compiler/src/core"
)

// DirectiveConfig is a directive as its author wrote it.
// Properties and Events use the "dirProp" / "dirProp: elProp" shorthand,
// Host uses "[prop]", "(event)" and plain attribute keys.
type DirectiveConfig struct {
	Type            *CompileTypeMetadata
	IsComponent     *bool
	DynamicLoadable *bool
	Selector        *string
	ExportAs        *string
	ChangeDetection *core.ChangeDetectionStrategy
	Properties      []string
	Events          []string
	Host            map[string]string
	LifecycleHooks  []core.LifecycleHooks
	Template        *CompileTemplateMetadata
}

// DirectiveFields is a directive already in canonical form, e.g. read back from a summary
type DirectiveFields struct {
	Type            *CompileTypeMetadata
	IsComponent     bool
	DynamicLoadable bool
	Selector        *string
	ExportAs        *string
	ChangeDetection *core.ChangeDetectionStrategy
	Properties      map[string]string
	Events          map[string]string
	HostListeners   map[string]string
	HostProperties  map[string]string
	HostAttributes  map[string]string
	LifecycleHooks  []core.LifecycleHooks
	Template        *CompileTemplateMetadata
}

// CompileDirectiveMetadata is the normalized description of a directive or component.
// It is read-only once built and safe to share between goroutines.
type CompileDirectiveMetadata struct {
	typ             *CompileTypeMetadata
	isComponent     bool
	dynamicLoadable bool
	selector        *string
	exportAs        *string
	changeDetection *core.ChangeDetectionStrategy
	properties      map[string]string
	events          map[string]string
	hostListeners   map[string]string
	hostProperties  map[string]string
	hostAttributes  map[string]string
	lifecycleHooks  []core.LifecycleHooks
	template        *CompileTemplateMetadata
}

// CreateDirectiveMetadata normalizes an author configuration.
// Nothing is validated: a component without a template is accepted here.
func CreateDirectiveMetadata(cfg DirectiveConfig) *CompileDirectiveMetadata {
	host := NormalizeHost(cfg.Host)
	return NewCompileDirectiveMetadata(DirectiveFields{
		Type:            cfg.Type,
		IsComponent:     normalizeBool(cfg.IsComponent),
		DynamicLoadable: normalizeBool(cfg.DynamicLoadable),
		Selector:        cfg.Selector,
		ExportAs:        cfg.ExportAs,
		ChangeDetection: cfg.ChangeDetection,
		Properties:      NormalizeBindingList(cfg.Properties),
		Events:          NormalizeBindingList(cfg.Events),
		HostListeners:   host.Listeners,
		HostProperties:  host.Properties,
		HostAttributes:  host.Attributes,
		LifecycleHooks:  cloneList(cfg.LifecycleHooks),
		Template:        cfg.Template,
	})
}

// NewCompileDirectiveMetadata stores canonical fields without normalizing them.
// Maps and lists are copied. A nil map is kept as nil and reads as empty.
func NewCompileDirectiveMetadata(f DirectiveFields) *CompileDirectiveMetadata {
	return &CompileDirectiveMetadata{
		typ:             f.Type,
		isComponent:     f.IsComponent,
		dynamicLoadable: f.DynamicLoadable,
		selector:        clonePtr(f.Selector),
		exportAs:        clonePtr(f.ExportAs),
		changeDetection: clonePtr(f.ChangeDetection),
		properties:      cloneMap(f.Properties),
		events:          cloneMap(f.Events),
		hostListeners:   cloneMap(f.HostListeners),
		hostProperties:  cloneMap(f.HostProperties),
		hostAttributes:  cloneMap(f.HostAttributes),
		lifecycleHooks:  slices.Clone(f.LifecycleHooks),
		template:        f.Template,
	}
}

func normalizeBool(b *bool) bool {
	return b != nil && *b
}

// Type returns the directive's type, nil when absent
func (d *CompileDirectiveMetadata) Type() *CompileTypeMetadata { return d.typ }

// IsComponent reports whether the directive owns a view
func (d *CompileDirectiveMetadata) IsComponent() bool { return d.isComponent }

// DynamicLoadable reports whether the component can be created dynamically
func (d *CompileDirectiveMetadata) DynamicLoadable() bool { return d.dynamicLoadable }

// Selector returns the selector, nil when absent
func (d *CompileDirectiveMetadata) Selector() *string { return clonePtr(d.selector) }

// ExportAs returns the template reference name, nil when absent
func (d *CompileDirectiveMetadata) ExportAs() *string { return clonePtr(d.exportAs) }

// ChangeDetection returns the change detection strategy, nil when absent
func (d *CompileDirectiveMetadata) ChangeDetection() *core.ChangeDetectionStrategy {
	return clonePtr(d.changeDetection)
}

// Properties maps directive property names to element property names
func (d *CompileDirectiveMetadata) Properties() map[string]string { return cloneMap(d.properties) }

// Events maps directive event names to element event names
func (d *CompileDirectiveMetadata) Events() map[string]string { return cloneMap(d.events) }

// HostListeners maps host event names to handler expressions
func (d *CompileDirectiveMetadata) HostListeners() map[string]string {
	return cloneMap(d.hostListeners)
}

// HostProperties maps host property names to bound expressions
func (d *CompileDirectiveMetadata) HostProperties() map[string]string {
	return cloneMap(d.hostProperties)
}

// HostAttributes maps host attribute names to literal values
func (d *CompileDirectiveMetadata) HostAttributes() map[string]string {
	return cloneMap(d.hostAttributes)
}

// LifecycleHooks returns the hooks in declaration order
func (d *CompileDirectiveMetadata) LifecycleHooks() []core.LifecycleHooks {
	return slices.Clone(d.lifecycleHooks)
}

// HasLifecycleHook reports whether hook was declared at least once
func (d *CompileDirectiveMetadata) HasLifecycleHook(hook core.LifecycleHooks) bool {
	return slices.Contains(d.lifecycleHooks, hook)
}

// Template returns the view resource, nil for plain directives
func (d *CompileDirectiveMetadata) Template() *CompileTemplateMetadata { return d.template }

// ToStructured converts the directive to a plain record. Absent values are left out.
func (d *CompileDirectiveMetadata) ToStructured() map[string]any {
	data := map[string]any{
		"isComponent":     d.isComponent,
		"dynamicLoadable": d.dynamicLoadable,
		"properties":      recordMap(d.properties),
		"events":          recordMap(d.events),
		"hostListeners":   recordMap(d.hostListeners),
		"hostProperties":  recordMap(d.hostProperties),
		"hostAttributes":  recordMap(d.hostAttributes),
	}
	putOptional(data, "selector", d.selector)
	putOptional(data, "exportAs", d.exportAs)
	if d.typ != nil {
		data["type"] = d.typ.ToStructured()
	}
	if d.changeDetection != nil {
		data["changeDetection"] = d.changeDetection.String()
	}
	hooks := make([]string, len(d.lifecycleHooks))
	for i, hook := range d.lifecycleHooks {
		hooks[i] = hook.String()
	}
	data["lifecycleHooks"] = hooks
	if d.template != nil {
		data["template"] = d.template.ToStructured()
	}
	return data
}

// CompileDirectiveMetadataFromStructured rebuilds a directive from ToStructured output.
// The record must carry a lifecycleHooks list; the rebuilt type has no runtime handle.
func CompileDirectiveMetadataFromStructured(data map[string]any) (*CompileDirectiveMetadata, error) {
	var (
		f   DirectiveFields
		err error
	)
	if f.IsComponent, err = boolField(data, "isComponent"); err != nil {
		return nil, err
	}
	if f.DynamicLoadable, err = boolField(data, "dynamicLoadable"); err != nil {
		return nil, err
	}
	if f.Selector, err = optionalString(data, "selector"); err != nil {
		return nil, err
	}
	if f.ExportAs, err = optionalString(data, "exportAs"); err != nil {
		return nil, err
	}

	typeData, err := record(data, "type")
	if err != nil {
		return nil, err
	}
	if typeData != nil {
		if f.Type, err = CompileTypeMetadataFromStructured(typeData); err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
	}

	f.ChangeDetection, err = optionalEnum(data, "changeDetection", core.ParseChangeDetectionStrategy, core.ChangeDetectionStrategyFromOrdinal)
	if err != nil {
		return nil, err
	}

	for key, dst := range map[string]*map[string]string{
		"properties":     &f.Properties,
		"events":         &f.Events,
		"hostListeners":  &f.HostListeners,
		"hostProperties": &f.HostProperties,
		"hostAttributes": &f.HostAttributes,
	} {
		if *dst, err = stringMap(data, key); err != nil {
			return nil, err
		}
	}

	if f.LifecycleHooks, err = lifecycleHooks(data); err != nil {
		return nil, err
	}

	templateData, err := record(data, "template")
	if err != nil {
		return nil, err
	}
	if templateData != nil {
		if f.Template, err = CompileTemplateMetadataFromStructured(templateData); err != nil {
			return nil, fmt.Errorf("template: %w", err)
		}
	}

	return NewCompileDirectiveMetadata(f), nil
}

func lifecycleHooks(data map[string]any) ([]core.LifecycleHooks, error) {
	raw, ok := data["lifecycleHooks"]
	if !ok || raw == nil {
		return nil, fmt.Errorf(`field "lifecycleHooks": missing`)
	}
	var items []any
	switch v := raw.(type) {
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []any:
		items = v
	default:
		return nil, fmt.Errorf(`field "lifecycleHooks": expected a list, got %T`, raw)
	}
	hooks := make([]core.LifecycleHooks, len(items))
	for i, item := range items {
		hook, err := decodeEnum(item, core.ParseLifecycleHooks, core.LifecycleHooksFromOrdinal)
		if err != nil {
			return nil, fmt.Errorf(`field "lifecycleHooks"[%d]: %w`, i, err)
		}
		hooks[i] = hook
	}
	return hooks, nil
}
