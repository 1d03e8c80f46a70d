package metadata

import (
	"fmt"

	"ngc-metadata/packages/compiler/src/css"
)

// DirectiveMatcher finds the directives whose selector applies to an element.
// Match calls must not run concurrently on the same matcher.
type DirectiveMatcher struct {
	matcher *css.SelectorMatcher[*CompileDirectiveMetadata]
}

// NewDirectiveMatcher indexes directives by selector. Directives without a selector are skipped.
func NewDirectiveMatcher(directives []*CompileDirectiveMetadata) (*DirectiveMatcher, error) {
	matcher := css.NewSelectorMatcher[*CompileDirectiveMetadata]()
	for _, directive := range directives {
		selector := directive.Selector()
		if selector == nil {
			continue
		}
		selectors, err := css.ParseCssSelector(*selector)
		if err != nil {
			return nil, fmt.Errorf("directive %s: %w", directiveName(directive), err)
		}
		matcher.AddSelectables(selectors, directive)
	}
	return &DirectiveMatcher{matcher: matcher}, nil
}

// Match returns the directives matching element, in match order and without duplicates
func (m *DirectiveMatcher) Match(element *css.CssSelector) []*CompileDirectiveMetadata {
	var result []*CompileDirectiveMetadata
	seen := map[*CompileDirectiveMetadata]bool{}
	m.matcher.Match(element, func(_ *css.CssSelector, directive *CompileDirectiveMetadata) {
		if !seen[directive] {
			seen[directive] = true
			result = append(result, directive)
		}
	})
	return result
}

// MatchTemplate matches the element described by a selector-like string, e.g. `button.primary[type=submit]`
func (m *DirectiveMatcher) MatchTemplate(element string) ([]*CompileDirectiveMetadata, error) {
	selectors, err := css.ParseCssSelector(element)
	if err != nil {
		return nil, err
	}
	return m.Match(selectors[0]), nil
}

func directiveName(d *CompileDirectiveMetadata) string {
	if t := d.Type(); t != nil {
		if name := t.Name(); name != nil {
			return *name
		}
	}
	return "<anonymous>"
}
