package css

// SelectorMatcher indexes selectors so an element description can be matched against all of them at once
type SelectorMatcher[T any] struct {
	elementMap          map[string][]*SelectorContext[T]
	elementPartialMap   map[string]*SelectorMatcher[T]
	classMap            map[string][]*SelectorContext[T]
	classPartialMap     map[string]*SelectorMatcher[T]
	attrValueMap        map[string]map[string][]*SelectorContext[T]
	attrValuePartialMap map[string]map[string]*SelectorMatcher[T]
	listContexts        []*SelectorListContext
}

// NewSelectorMatcher creates a new SelectorMatcher
func NewSelectorMatcher[T any]() *SelectorMatcher[T] {
	return &SelectorMatcher[T]{
		elementMap:          make(map[string][]*SelectorContext[T]),
		elementPartialMap:   make(map[string]*SelectorMatcher[T]),
		classMap:            make(map[string][]*SelectorContext[T]),
		classPartialMap:     make(map[string]*SelectorMatcher[T]),
		attrValueMap:        make(map[string]map[string][]*SelectorContext[T]),
		attrValuePartialMap: make(map[string]map[string]*SelectorMatcher[T]),
	}
}

// AddSelectables registers every selector of a selector list under the same callback context.
// Entries of one list only fire the callback once per Match.
func (sm *SelectorMatcher[T]) AddSelectables(cssSelectors []*CssSelector, callbackCtxt T) {
	var listContext *SelectorListContext
	if len(cssSelectors) > 1 {
		listContext = &SelectorListContext{Selectors: cssSelectors}
		sm.listContexts = append(sm.listContexts, listContext)
	}

	for _, cssSelector := range cssSelectors {
		sm.addSelectable(cssSelector, callbackCtxt, listContext)
	}
}

func (sm *SelectorMatcher[T]) addSelectable(cssSelector *CssSelector, callbackCtxt T, listContext *SelectorListContext) {
	matcher := sm
	classNames := cssSelector.ClassNames
	attrs := cssSelector.Attrs
	selectable := &SelectorContext[T]{
		Selector:     cssSelector,
		CbContext:    callbackCtxt,
		ListContext:  listContext,
		NotSelectors: cssSelector.NotSelectors,
	}

	if element := cssSelector.Element; element != nil {
		if len(attrs) == 0 && len(classNames) == 0 {
			addTerminal(matcher.elementMap, *element, selectable)
		} else {
			matcher = addPartial(matcher.elementPartialMap, *element)
		}
	}

	for i, className := range classNames {
		if len(attrs) == 0 && i == len(classNames)-1 {
			addTerminal(matcher.classMap, className, selectable)
		} else {
			matcher = addPartial(matcher.classPartialMap, className)
		}
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if i == len(attrs)-2 {
			values, ok := matcher.attrValueMap[name]
			if !ok {
				values = make(map[string][]*SelectorContext[T])
				matcher.attrValueMap[name] = values
			}
			addTerminal(values, value, selectable)
		} else {
			values, ok := matcher.attrValuePartialMap[name]
			if !ok {
				values = make(map[string]*SelectorMatcher[T])
				matcher.attrValuePartialMap[name] = values
			}
			matcher = addPartial(values, value)
		}
	}
}

func addTerminal[T any](m map[string][]*SelectorContext[T], name string, selectable *SelectorContext[T]) {
	m[name] = append(m[name], selectable)
}

func addPartial[T any](m map[string]*SelectorMatcher[T], name string) *SelectorMatcher[T] {
	matcher, ok := m[name]
	if !ok {
		matcher = NewSelectorMatcher[T]()
		m[name] = matcher
	}
	return matcher
}

// MatchCallback is invoked for every registered selector that matches
type MatchCallback[T any] func(c *CssSelector, a T)

// Match reports whether any registered selector matches cssSelector, calling matchedCallback for each hit.
// An empty attribute value in a registered selector matches any value.
func (sm *SelectorMatcher[T]) Match(cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	for _, listContext := range sm.listContexts {
		listContext.AlreadyMatched = false
	}
	return sm.match(cssSelector, matchedCallback)
}

func (sm *SelectorMatcher[T]) match(cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	result := false
	if element := cssSelector.Element; element != nil {
		result = matchTerminal(sm.elementMap, *element, cssSelector, matchedCallback) || result
		result = matchPartial(sm.elementPartialMap, *element, cssSelector, matchedCallback) || result
	}

	for _, className := range cssSelector.ClassNames {
		result = matchTerminal(sm.classMap, className, cssSelector, matchedCallback) || result
		result = matchPartial(sm.classPartialMap, className, cssSelector, matchedCallback) || result
	}

	attrs := cssSelector.Attrs
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]

		if terminalValues, ok := sm.attrValueMap[name]; ok {
			if value != "" {
				result = matchTerminal(terminalValues, "", cssSelector, matchedCallback) || result
			}
			result = matchTerminal(terminalValues, value, cssSelector, matchedCallback) || result
		}

		if partialValues, ok := sm.attrValuePartialMap[name]; ok {
			if value != "" {
				result = matchPartial(partialValues, "", cssSelector, matchedCallback) || result
			}
			result = matchPartial(partialValues, value, cssSelector, matchedCallback) || result
		}
	}

	return result
}

func matchTerminal[T any](m map[string][]*SelectorContext[T], name string, cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	if m == nil {
		return false
	}

	var selectables []*SelectorContext[T]
	selectables = append(selectables, m[name]...)
	selectables = append(selectables, m["*"]...)
	if len(selectables) == 0 {
		return false
	}

	result := false
	for _, selectable := range selectables {
		result = selectable.Finalize(cssSelector, matchedCallback) || result
	}
	return result
}

func matchPartial[T any](m map[string]*SelectorMatcher[T], name string, cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	if m == nil {
		return false
	}
	nested, ok := m[name]
	if !ok {
		return false
	}
	// Partial matchers share the list contexts of their root, so they must not reset them.
	return nested.match(cssSelector, matchedCallback)
}

// SelectorListContext tracks whether some entry of a selector list already matched
type SelectorListContext struct {
	AlreadyMatched bool
	Selectors      []*CssSelector
}

// SelectorContext is a registered selector together with its callback context
type SelectorContext[T any] struct {
	Selector     *CssSelector
	CbContext    T
	ListContext  *SelectorListContext
	NotSelectors []*CssSelector
}

// Finalize applies the :not() part of the selector and fires the callback
func (sc *SelectorContext[T]) Finalize(cssSelector *CssSelector, callback MatchCallback[T]) bool {
	result := true
	if len(sc.NotSelectors) > 0 && (sc.ListContext == nil || !sc.ListContext.AlreadyMatched) {
		notMatcher := NewSelectorMatcher[struct{}]()
		notMatcher.AddSelectables(sc.NotSelectors, struct{}{})
		result = !notMatcher.Match(cssSelector, nil)
	}
	if result && callback != nil && (sc.ListContext == nil || !sc.ListContext.AlreadyMatched) {
		if sc.ListContext != nil {
			sc.ListContext.AlreadyMatched = true
		}
		callback(sc.Selector, sc.CbContext)
	}
	return result
}
