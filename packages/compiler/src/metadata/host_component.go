package metadata

import (
	"ngc-metadata/packages/compiler/src/core"
	"ngc-metadata/packages/compiler/src/css"
)

// HostTypePrefix is prepended to a component name to name its host wrapper
const HostTypePrefix = "Host"

// HostSelector matches whatever element the host wrapper is placed on
const HostSelector = "*"

// CreateHostComponentMeta builds the synthetic component that renders componentType's element.
// Its template is the element matched by the first selector of componentSelector; further
// selectors in a list are ignored. Selector parse errors are returned as is.
func CreateHostComponentMeta(componentType *CompileTypeMetadata, componentSelector string) (*CompileDirectiveMetadata, error) {
	selectors, err := css.ParseCssSelector(componentSelector)
	if err != nil {
		return nil, err
	}
	template := selectors[0].GetMatchingElementTemplate()

	name := HostTypePrefix
	if n := componentType.Name(); n != nil {
		name += *n
	}
	emptyURL := ""
	changeDetection := core.ChangeDetectionStrategyDefault
	isComponent := true
	dynamicLoadable := false
	selector := HostSelector

	return CreateDirectiveMetadata(DirectiveConfig{
		Type: NewCompileTypeMetadata(TypeConfig{
			Name:     &name,
			ModuleID: componentType.ModuleID(),
		}),
		Template: NewCompileTemplateMetadata(TemplateConfig{
			Template:           &template,
			TemplateURL:        &emptyURL,
			Styles:             []string{},
			StyleURLs:          []string{},
			NgContentSelectors: []string{},
		}),
		ChangeDetection: &changeDetection,
		Properties:      []string{},
		Events:          []string{},
		Host:            map[string]string{},
		LifecycleHooks:  []core.LifecycleHooks{},
		IsComponent:     &isComponent,
		DynamicLoadable: &dynamicLoadable,
		Selector:        &selector,
	}), nil
}
