package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	compiler "ngc-metadata/packages/compiler/src"
	"ngc-metadata/packages/compiler/src/config"
	"ngc-metadata/packages/compiler/src/metadata"
	"ngc-metadata/packages/compiler/src/summary"
)

const todoManifest = `
directives:
  - name: TodoList
    moduleId: app/todo
    selector: todo-list
    isComponent: true
    changeDetection: OnPush
    properties: ["items: todos"]
    host:
      "(keydown)": "onKey($event)"
      role: list
    lifecycleHooks: [OnInit]
    template:
      templateUrl: list.html
  - name: Highlight
    moduleId: app/todo
    selector: "[highlight]"
    properties: [highlight]
  - name: Detached
    moduleId: app/todo
    isComponent: true
`

const widgetManifest = `{
  "directives": [
    {"name": "Badge", "moduleId": "app/widgets", "selector": "span.badge", "isComponent": true,
     "template": {"template": "<ng-content></ng-content>"}}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newCompiler(t *testing.T, opts ...config.CompilerConfigOption) *compiler.Compiler {
	t.Helper()
	opts = append([]config.CompilerConfigOption{config.WithSummaryDir(filepath.Join(t.TempDir(), "summaries"))}, opts...)
	c, err := compiler.NewCompiler(config.NewCompilerConfig(opts...), zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func names(ds []*metadata.CompileDirectiveMetadata) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = *d.Type().Name()
	}
	return out
}

func TestCompile(t *testing.T) {
	t.Run("should normalize directives in manifest order and synthesize hosts", func(t *testing.T) {
		dir := t.TempDir()
		todo := writeFile(t, dir, "todo.yaml", todoManifest)
		widgets := writeFile(t, dir, "widgets.json", widgetManifest)
		c := newCompiler(t, config.WithJobs(2))

		result, err := c.Compile(context.Background(), []string{todo, widgets})
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"TodoList", "Highlight", "Detached", "Badge"}, names(result.Directives)); diff != "" {
			t.Errorf("Directives mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"HostTodoList", "HostBadge"}, names(result.Hosts)); diff != "" {
			t.Errorf("Hosts mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, `<span class="badge"></span>`, *result.Hosts[1].Template().Template())

		todoList := result.Directives[0]
		if diff := cmp.Diff(map[string]string{"items": "todos"}, todoList.Properties()); diff != "" {
			t.Errorf("Properties mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(map[string]string{"keydown": "onKey($event)"}, todoList.HostListeners()); diff != "" {
			t.Errorf("HostListeners mismatch (-want +got):\n%s", diff)
		}

		wantKeys := []summary.Key{
			{ModuleID: "app/todo", Name: "TodoList"},
			{ModuleID: "app/todo", Name: "HostTodoList"},
			{ModuleID: "app/todo", Name: "Highlight"},
			{ModuleID: "app/todo", Name: "Detached"},
			{ModuleID: "app/widgets", Name: "Badge"},
			{ModuleID: "app/widgets", Name: "HostBadge"},
		}
		if diff := cmp.Diff(wantKeys, result.Summaries); diff != "" {
			t.Errorf("Summaries mismatch (-want +got):\n%s", diff)
		}

		stored, found, err := c.Store().Get(summary.Key{ModuleID: "app/todo", Name: "TodoList"})
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, todoList.ToStructured(), stored.ToStructured())
	})

	t.Run("should match compiled directives against elements", func(t *testing.T) {
		todo := writeFile(t, t.TempDir(), "todo.yaml", todoManifest)
		result, err := newCompiler(t).Compile(context.Background(), []string{todo})
		require.NoError(t, err)

		matcher, err := result.Matcher()
		require.NoError(t, err)
		matched, err := matcher.MatchTemplate("todo-list[highlight]")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"TodoList", "Highlight"}, names(matched))
	})

	t.Run("should reuse cached host descriptors", func(t *testing.T) {
		dir := t.TempDir()
		widgets := writeFile(t, dir, "widgets.json", widgetManifest)
		c := newCompiler(t)

		first, err := c.Compile(context.Background(), []string{widgets})
		require.NoError(t, err)
		second, err := c.Compile(context.Background(), []string{widgets})
		require.NoError(t, err)
		require.Same(t, first.Hosts[0], second.Hosts[0])
		require.Equal(t, 1, c.Hosts().Len())
	})

	t.Run("should warn about style urls that cannot be resolved", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "styled.yaml", `
directives:
  - name: Styled
    isComponent: true
    template:
      styleUrls: [styled.css, "https://cdn.example.com/x.css", "package:ui/base.css"]
`)
		result, err := newCompiler(t).Compile(context.Background(), []string{path})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		require.Contains(t, result.Warnings[0], "https://cdn.example.com/x.css")
	})

	t.Run("should warn when a directive takes the summary key of a host", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "clash.yaml", `
directives:
  - name: Foo
    moduleId: app
    selector: foo
    isComponent: true
  - name: HostFoo
    moduleId: app
`)
		result, err := newCompiler(t).Compile(context.Background(), []string{path})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		require.Contains(t, result.Warnings[0], "app#HostFoo")
		require.Equal(t, []summary.Key{{ModuleID: "app", Name: "Foo"}, {ModuleID: "app", Name: "HostFoo"}}, result.Summaries)
	})

	t.Run("should report unknown enum names with the manifest path", func(t *testing.T) {
		bad := writeFile(t, t.TempDir(), "bad.yaml", "directives:\n  - name: Broken\n    changeDetection: Sometimes\n")
		_, err := newCompiler(t).Compile(context.Background(), []string{bad})
		require.ErrorContains(t, err, "bad.yaml")
		require.ErrorContains(t, err, "Sometimes")
	})

	t.Run("should fail on unparseable component selectors", func(t *testing.T) {
		bad := writeFile(t, t.TempDir(), "bad.yaml", "directives:\n  - name: Nested\n    isComponent: true\n    selector: \"a:not(b:not(c))\"\n")
		_, err := newCompiler(t).Compile(context.Background(), []string{bad})
		require.ErrorContains(t, err, "Nesting :not")
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		todo := writeFile(t, t.TempDir(), "todo.yaml", todoManifest)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newCompiler(t).Compile(ctx, []string{todo})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should accept an empty manifest list", func(t *testing.T) {
		result, err := newCompiler(t).Compile(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, result.Directives)
	})
}

func TestNewCompiler(t *testing.T) {
	t.Run("should reject an invalid configuration", func(t *testing.T) {
		_, err := compiler.NewCompiler(config.NewCompilerConfig(config.WithJobs(-3)), nil)
		require.Error(t, err)
	})
}

func TestHostResolver(t *testing.T) {
	r, err := compiler.NewHostResolver(1)
	require.NoError(t, err)
	typ := metadata.NewCompileTypeMetadata(metadata.TypeConfig{Name: ptr("A")})

	first, err := r.Resolve(typ, "a-el")
	require.NoError(t, err)
	again, err := r.Resolve(typ, "a-el")
	require.NoError(t, err)
	require.Same(t, first, again)

	other, err := r.Resolve(typ, "b-el")
	require.NoError(t, err)
	require.NotSame(t, first, other)
	require.Equal(t, 1, r.Len())

	_, err = compiler.NewHostResolver(0)
	require.Error(t, err)
}

func TestHostResolverKeepsAbsentAndEmptyApart(t *testing.T) {
	r, err := compiler.NewHostResolver(8)
	require.NoError(t, err)

	absentModule, err := r.Resolve(metadata.NewCompileTypeMetadata(metadata.TypeConfig{Name: ptr("Foo")}), "foo")
	require.NoError(t, err)
	emptyModule, err := r.Resolve(metadata.NewCompileTypeMetadata(metadata.TypeConfig{Name: ptr("Foo"), ModuleID: ptr("")}), "foo")
	require.NoError(t, err)
	require.Nil(t, absentModule.Type().ModuleID())
	require.NotNil(t, emptyModule.Type().ModuleID())
	require.Equal(t, "", *emptyModule.Type().ModuleID())

	absentName, err := r.Resolve(metadata.NewCompileTypeMetadata(metadata.TypeConfig{}), "foo")
	require.NoError(t, err)
	emptyName, err := r.Resolve(metadata.NewCompileTypeMetadata(metadata.TypeConfig{Name: ptr("")}), "foo")
	require.NoError(t, err)
	require.NotSame(t, absentName, emptyName)
	require.Equal(t, 4, r.Len())
}

func ptr[T any](v T) *T { return &v }
