package css_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-metadata/packages/compiler/src/css"
)

// getSelectorFor builds an element description the way the template parser would
func getSelectorFor(tag, classes string, attrs ...[2]string) *css.CssSelector {
	selector := css.NewCssSelector()
	if tag != "" {
		selector.SetElement(tag)
	}
	for _, className := range strings.Fields(classes) {
		selector.AddClassName(className)
	}
	for _, attr := range attrs {
		selector.AddAttribute(attr[0], attr[1])
	}
	return selector
}

type collector struct {
	matched []int
}

func (c *collector) collect(_ *css.CssSelector, ctx int) {
	c.matched = append(c.matched, ctx)
}

func TestSelectorMatcher(t *testing.T) {
	t.Run("should select by element name case sensitive", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "someTag"), 1)

		c := &collector{}
		if matcher.Match(getSelectorFor("SOMEOTHERTAG", ""), c.collect) {
			t.Error("Expected no match for a different tag")
		}
		if matcher.Match(getSelectorFor("SOMETAG", ""), c.collect) {
			t.Error("Expected no match for an upper case tag")
		}
		if !matcher.Match(getSelectorFor("someTag", ""), c.collect) {
			t.Error("Expected a match for the exact tag")
		}
		if diff := cmp.Diff([]int{1}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should select by class name case insensitive", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, ".someClass"), 1)
		matcher.AddSelectables(mustParse(t, ".someClass.class2"), 2)

		c := &collector{}
		if matcher.Match(getSelectorFor("", "SOMEOTHERCLASS"), c.collect) {
			t.Error("Expected no match for a different class")
		}
		if !matcher.Match(getSelectorFor("", "SOMECLASS"), c.collect) {
			t.Error("Expected a match ignoring case")
		}
		if !matcher.Match(getSelectorFor("", "someClass class2"), c.collect) {
			t.Error("Expected a match for both classes")
		}
		if diff := cmp.Diff([]int{1, 1, 2}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should select by attr name independent of the value", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "[someAttr]"), 1)
		matcher.AddSelectables(mustParse(t, "[someAttr][someAttr2]"), 2)

		c := &collector{}
		if matcher.Match(getSelectorFor("", "", [2]string{"SOMEATTR", ""}), c.collect) {
			t.Error("Expected no match for an upper case attribute")
		}
		if !matcher.Match(getSelectorFor("", "", [2]string{"someAttr2", ""}, [2]string{"someAttr", "someValue"}), c.collect) {
			t.Error("Expected a match")
		}
		if diff := cmp.Diff([]int{1, 2}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should select by element, class and attribute together", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "someTag.someClass[someAttr=someValue]"), 1)

		c := &collector{}
		if matcher.Match(getSelectorFor("someOtherTag", "someClass", [2]string{"someAttr", "someValue"}), c.collect) {
			t.Error("Expected no match for another tag")
		}
		if !matcher.Match(getSelectorFor("someTag", "someClass", [2]string{"someAttr", "someValue"}), c.collect) {
			t.Error("Expected a match")
		}
		if diff := cmp.Diff([]int{1}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should select with :not", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "p:not(.someClass)"), 1)
		matcher.AddSelectables(mustParse(t, ":not([someAttr])"), 2)

		c := &collector{}
		if !matcher.Match(getSelectorFor("p", ""), c.collect) {
			t.Error("Expected a match")
		}
		if diff := cmp.Diff([]int{1, 2}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}

		c = &collector{}
		if matcher.Match(getSelectorFor("p", "someClass", [2]string{"someAttr", ""}), c.collect) {
			t.Error("Expected no match when both :not parts apply")
		}
	})

	t.Run("should match a selector list only once", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "input, .someClass"), 1)

		c := &collector{}
		if !matcher.Match(getSelectorFor("input", "someclass"), c.collect) {
			t.Error("Expected a match")
		}
		if !matcher.Match(getSelectorFor("input", "someclass"), c.collect) {
			t.Error("Expected a second match")
		}
		if diff := cmp.Diff([]int{1, 1}, c.matched); diff != "" {
			t.Errorf("Matched mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should accept a nil callback", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[int]()
		matcher.AddSelectables(mustParse(t, "a"), 1)
		if !matcher.Match(getSelectorFor("a", ""), nil) {
			t.Error("Expected a match")
		}
	})
}
