package css

import (
	"fmt"
	"regexp"
	"strings"

	"ngc-metadata/packages/compiler/src/util"
)

// Capture groups of selectorRegexp
const (
	groupNot                 = 1  // ":not("
	groupTag                 = 2  // "tag", ".class", "#id"
	groupPrefix              = 3  // "." or "#"
	groupAttribute           = 4  // attribute name
	groupDoubleQuotedValue   = 6  // value of [name="value"]
	groupSingleQuotedValue   = 8  // value of [name='value']
	groupUnquotedValueMarker = 9  // "=" of [name=value]
	groupUnquotedValue       = 10 // value of [name=value]
	groupNotEnd              = 12 // ")"
	groupSeparator           = 13 // ","
)

// Go regexp has no backreferences, so each quoting style of an attribute value gets its own alternative.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` +
		`(([\.\#]?)[-\w]+)|` +
		// "-" should appear first in the character class below so it is not read as a range
		`(?:\[([-.\w*\\$]+)(?:=(")([^\]"]*)"|(')([^\]']*)'|(=)([^\]\s]+)|())\])|` +
		`(\))|` +
		`(\s*,\s*)`,
)

// voidTags never get a closing tag in a matching element template
var voidTags = map[string]bool{
	"base": true, "meta": true, "area": true, "embed": true, "link": true, "img": true, "input": true,
	"param": true, "hr": true, "br": true, "source": true, "track": true, "wbr": true, "col": true,
}

// CssSelector represents a CSS selector
type CssSelector struct {
	Element      *string
	ClassNames   []string
	Attrs        []string // Pairs: [name, value, name, value, ...]
	NotSelectors []*CssSelector
}

// NewCssSelector creates a new CssSelector
func NewCssSelector() *CssSelector {
	return &CssSelector{
		ClassNames:   []string{},
		Attrs:        []string{},
		NotSelectors: []*CssSelector{},
	}
}

// ParseCssSelector parses a selector list such as "a.b, [c]" into one CssSelector per entry.
// Malformed selectors are reported as *util.ParseError pointing into the selector text.
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	file := util.NewParseSourceFile(selector, "selector")
	fail := func(start, end int, format string, args ...any) error {
		return util.NewParseError(util.SingleLineSpan(file, start, end), fmt.Sprintf(format, args...))
	}

	results := []*CssSelector{}
	addResult := func(cssSel *CssSelector) {
		if len(cssSel.NotSelectors) > 0 &&
			cssSel.Element == nil &&
			len(cssSel.ClassNames) == 0 &&
			len(cssSel.Attrs) == 0 {
			cssSel.SetElement("*")
		}
		results = append(results, cssSel)
	}

	cssSelector := NewCssSelector()
	current := cssSelector
	inNot := false

	for _, loc := range selectorRegexp.FindAllStringSubmatchIndex(selector, -1) {
		group := func(n int) (string, bool) {
			if loc[2*n] < 0 {
				return "", false
			}
			return selector[loc[2*n]:loc[2*n+1]], true
		}
		start, end := loc[0], loc[1]

		if _, ok := group(groupNot); ok {
			if inNot {
				return nil, fail(start, end, "Nesting :not in a selector is not allowed")
			}
			inNot = true
			current = NewCssSelector()
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}

		if tag, ok := group(groupTag); ok {
			prefix, _ := group(groupPrefix)
			switch prefix {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.SetElement(tag)
			}
		}

		if attribute, ok := group(groupAttribute); ok {
			value := ""
			if v, ok := group(groupDoubleQuotedValue); ok {
				value = v
			} else if v, ok := group(groupSingleQuotedValue); ok {
				value = v
			} else if _, ok := group(groupUnquotedValueMarker); ok {
				value, _ = group(groupUnquotedValue)
			}
			unescaped, err := current.UnescapeAttribute(attribute)
			if err != nil {
				return nil, fail(start, end, "%s", err.Error())
			}
			current.AddAttribute(unescaped, value)
		}

		if _, ok := group(groupNotEnd); ok {
			inNot = false
			current = cssSelector
		}

		if _, ok := group(groupSeparator); ok {
			if inNot {
				return nil, fail(start, end, "Multiple selectors in :not are not supported")
			}
			addResult(cssSelector)
			cssSelector = NewCssSelector()
			current = cssSelector
		}
	}

	addResult(cssSelector)
	return results, nil
}

// UnescapeAttribute unescapes \$ sequences from the CSS attribute selector
func (cs *CssSelector) UnescapeAttribute(attr string) (string, error) {
	var b strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`Error in attribute selector "%s". Unescaped "$" is not supported. Please escape with "\$".`, attr)
		}
		escaping = false
		b.WriteByte(char)
	}
	return b.String(), nil
}

// EscapeAttribute escapes $ sequences from the CSS attribute selector
func (cs *CssSelector) EscapeAttribute(attr string) string {
	result := strings.ReplaceAll(attr, "\\", "\\\\")
	return strings.ReplaceAll(result, "$", "\\$")
}

// IsElementSelector checks if this is an element selector
func (cs *CssSelector) IsElementSelector() bool {
	return cs.HasElementSelector() &&
		len(cs.ClassNames) == 0 &&
		len(cs.Attrs) == 0 &&
		len(cs.NotSelectors) == 0
}

// HasElementSelector checks if this selector has an element
func (cs *CssSelector) HasElementSelector() bool {
	return cs.Element != nil
}

// SetElement sets the element name
func (cs *CssSelector) SetElement(element string) {
	cs.Element = &element
}

// GetMatchingElementTemplate returns the smallest markup fragment this selector matches.
// A selector without an element name produces a div. Negative selectors are ignored.
func (cs *CssSelector) GetMatchingElementTemplate() string {
	tagName := "div"
	if cs.Element != nil && *cs.Element != "*" {
		tagName = *cs.Element
	}

	classAttr := ""
	if len(cs.ClassNames) > 0 {
		classAttr = fmt.Sprintf(` class="%s"`, strings.Join(cs.ClassNames, " "))
	}

	var attrs strings.Builder
	for i := 0; i+1 < len(cs.Attrs); i += 2 {
		attrs.WriteString(" ")
		attrs.WriteString(cs.Attrs[i])
		if value := cs.Attrs[i+1]; value != "" {
			fmt.Fprintf(&attrs, `="%s"`, value)
		}
	}

	if voidTags[strings.ToLower(tagName)] {
		return fmt.Sprintf("<%s%s%s/>", tagName, classAttr, attrs.String())
	}
	return fmt.Sprintf("<%s%s%s></%s>", tagName, classAttr, attrs.String(), tagName)
}

// AddAttribute adds an attribute
func (cs *CssSelector) AddAttribute(name string, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

// String returns the string representation of the selector
func (cs *CssSelector) String() string {
	res := ""
	if cs.Element != nil {
		res = *cs.Element
	}

	for _, klass := range cs.ClassNames {
		res += "." + klass
	}

	for i := 0; i+1 < len(cs.Attrs); i += 2 {
		name := cs.EscapeAttribute(cs.Attrs[i])
		value := cs.Attrs[i+1]
		if value != "" {
			res += fmt.Sprintf("[%s=%s]", name, value)
		} else {
			res += fmt.Sprintf("[%s]", name)
		}
	}

	for _, notSelector := range cs.NotSelectors {
		res += fmt.Sprintf(":not(%s)", notSelector.String())
	}

	return res
}
