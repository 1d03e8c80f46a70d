package util_test

import (
	"strings"
	"testing"

	"ngc-metadata/packages/compiler/src/util"
)

func TestSplitAtColon(t *testing.T) {
	t.Run("should split when a single \":\" is present", func(t *testing.T) {
		result := util.SplitAtColon("a:b", []string{})
		if len(result) != 2 {
			t.Fatalf("Expected 2 elements, got %d", len(result))
		}
		if result[0] != "a" {
			t.Errorf("Expected first element to be 'a', got '%s'", result[0])
		}
		if result[1] != "b" {
			t.Errorf("Expected second element to be 'b', got '%s'", result[1])
		}
	})

	t.Run("should trim parts", func(t *testing.T) {
		result := util.SplitAtColon(" a : b ", []string{})
		if len(result) != 2 {
			t.Fatalf("Expected 2 elements, got %d", len(result))
		}
		if result[0] != "a" || result[1] != "b" {
			t.Errorf("Expected [a b], got %v", result)
		}
	})

	t.Run("should support multiple \":\"", func(t *testing.T) {
		result := util.SplitAtColon("a:b:c", []string{})
		if len(result) != 2 {
			t.Fatalf("Expected 2 elements, got %d", len(result))
		}
		if result[0] != "a" {
			t.Errorf("Expected first element to be 'a', got '%s'", result[0])
		}
		if result[1] != "b:c" {
			t.Errorf("Expected second element to be 'b:c', got '%s'", result[1])
		}
	})

	t.Run("should use the default value when no \":\" is present", func(t *testing.T) {
		result := util.SplitAtColon(" ab ", []string{"c", "d"})
		if len(result) != 2 || result[0] != "c" || result[1] != "d" {
			t.Errorf("Expected [c d], got %v", result)
		}
	})

	t.Run("should keep empty segments around the colon", func(t *testing.T) {
		result := util.SplitAtColon(":", nil)
		if len(result) != 2 || result[0] != "" || result[1] != "" {
			t.Errorf("Expected two empty strings, got %q", result)
		}
	})
}

func TestParseError(t *testing.T) {
	t.Run("should report the message alone without a span", func(t *testing.T) {
		err := util.NewParseError(nil, "boom")
		if err.Error() != "boom" {
			t.Errorf("Expected 'boom', got %q", err.Error())
		}
	})

	t.Run("should point at the offending offset", func(t *testing.T) {
		file := util.NewParseSourceFile("a:not(b:not(c))", "selector")
		err := util.NewParseError(util.SingleLineSpan(file, 7, 12), "nested")
		msg := err.Error()
		if !strings.HasPrefix(msg, `nested ("a:not(b[ERROR ->]:not(c))")`) {
			t.Errorf("Unexpected message %q", msg)
		}
		if !strings.HasSuffix(msg, "selector@0:7") {
			t.Errorf("Expected location suffix, got %q", msg)
		}
	})
}
