package metadata_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-metadata/packages/compiler/src/metadata"
)

func TestNormalizeHost(t *testing.T) {
	t.Run("should split properties, listeners and attributes", func(t *testing.T) {
		result := metadata.NormalizeHost(map[string]string{"[x]": "1", "(y)": "2", "z": "3"})
		want := metadata.HostBindings{
			Attributes: map[string]string{"z": "3"},
			Properties: map[string]string{"x": "1"},
			Listeners:  map[string]string{"y": "2"},
		}
		if diff := cmp.Diff(want, result); diff != "" {
			t.Errorf("HostBindings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should return three empty maps for an empty or nil host", func(t *testing.T) {
		for _, host := range []map[string]string{{}, nil} {
			result := metadata.NormalizeHost(host)
			if result.Attributes == nil || result.Properties == nil || result.Listeners == nil {
				t.Fatalf("Expected non-nil maps, got %#v", result)
			}
			if len(result.Attributes)+len(result.Properties)+len(result.Listeners) != 0 {
				t.Errorf("Expected empty maps, got %#v", result)
			}
		}
	})

	t.Run("should keep values unchanged", func(t *testing.T) {
		result := metadata.NormalizeHost(map[string]string{"(click)": "onClick($event)", "[class.active]": " isActive "})
		if result.Listeners["click"] != "onClick($event)" {
			t.Errorf("Unexpected listener %q", result.Listeners["click"])
		}
		if result.Properties["class.active"] != " isActive " {
			t.Errorf("Unexpected property %q", result.Properties["class.active"])
		}
	})

	// Unbalanced or empty bracket keys are accepted as literal attribute names.
	// This is lenient on purpose and kept as is.
	t.Run("should treat malformed bracket keys as attributes", func(t *testing.T) {
		keys := []string{"[foo", "foo]", "(foo", "foo)", "[]", "()", "[a]b]", "(a)b)", "[a)", "(a]", " [a]", "[a] ", "a[b]"}
		host := map[string]string{}
		for _, key := range keys {
			host[key] = "v"
		}
		result := metadata.NormalizeHost(host)
		if len(result.Properties) != 0 || len(result.Listeners) != 0 {
			t.Errorf("Expected no bindings, got properties=%v listeners=%v", result.Properties, result.Listeners)
		}
		if diff := cmp.Diff(host, result.Attributes); diff != "" {
			t.Errorf("Attributes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should allow the other bracket kind inside a binding name", func(t *testing.T) {
		result := metadata.NormalizeHost(map[string]string{"[[a]": "1", "((b)": "2", "[(c)]": "3"})
		want := metadata.HostBindings{
			Attributes: map[string]string{},
			Properties: map[string]string{"[a": "1", "(c)": "3"},
			Listeners:  map[string]string{"(b": "2"},
		}
		if diff := cmp.Diff(want, result); diff != "" {
			t.Errorf("HostBindings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should partition every key exactly once", func(t *testing.T) {
		host := map[string]string{}
		for i := 0; i < 30; i++ {
			switch i % 3 {
			case 0:
				host[fmt.Sprintf("[p%d]", i)] = "v"
			case 1:
				host[fmt.Sprintf("(e%d)", i)] = "v"
			default:
				host[fmt.Sprintf("a%d", i)] = "v"
			}
		}
		result := metadata.NormalizeHost(host)
		total := len(result.Attributes) + len(result.Properties) + len(result.Listeners)
		if total != len(host) {
			t.Errorf("Expected %d entries, got %d", len(host), total)
		}
		if len(result.Attributes) != 10 || len(result.Properties) != 10 || len(result.Listeners) != 10 {
			t.Errorf("Expected 10 entries per kind, got %d/%d/%d",
				len(result.Attributes), len(result.Properties), len(result.Listeners))
		}
	})
}

func TestNormalizeBindingList(t *testing.T) {
	t.Run("should map an entry without a colon to itself", func(t *testing.T) {
		if diff := cmp.Diff(map[string]string{"a": "a"}, metadata.NormalizeBindingList([]string{"a"})); diff != "" {
			t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should split and trim at the first colon", func(t *testing.T) {
		got := metadata.NormalizeBindingList([]string{"a: b", "c", "d : e:f"})
		want := map[string]string{"a": "b", "c": "c", "d": "e:f"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should let the last duplicate win", func(t *testing.T) {
		got := metadata.NormalizeBindingList([]string{"a: first", "a: second"})
		if got["a"] != "second" {
			t.Errorf("Expected 'second', got %q", got["a"])
		}
	})

	t.Run("should accept empty segments around the colon", func(t *testing.T) {
		got := metadata.NormalizeBindingList([]string{":b", "c:"})
		want := map[string]string{"": "b", "c": ""}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should return an empty map for an empty or nil list", func(t *testing.T) {
		for _, list := range [][]string{{}, nil} {
			got := metadata.NormalizeBindingList(list)
			if got == nil || len(got) != 0 {
				t.Errorf("Expected an empty map, got %#v", got)
			}
		}
	})
}
