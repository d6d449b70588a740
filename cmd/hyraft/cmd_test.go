package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/pkg/config"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

const testLayout = `<html><head><title>Site</title><hyraft styles="css"></head>` +
	`<body><hyraft content="hyraft"><hyraft script="javascript"></body></html>`

// project writes a minimal project into a temporary directory.
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"public/index.html":   testLayout,
		"public/css/site.css": "body{margin:0}",
		"adapter-intake/home/display/index.hyr": `<metadata html><title>Home</title></metadata>
<displayer html><h1>Hello [.name.]</h1></displayer>`,
		"adapter-intake/home/display/articles/show.hyr": `<style src="/css/site.css"/>
<displayer html><article>[.count.]</article></displayer>`,
		"app.js":      "var greeting = \"hi\";\n// comment\nconsole.log(greeting);\n",
		"locals.yaml": "name: Grace\ncount: 2\n",
	}
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	t.Parallel()
	dir := project(t)

	t.Run("set", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "render", "index", "--root", dir, "--set", "name=Ada")
		require.NoError(t, err)
		assert.Contains(t, out, "<h1>Hello Ada</h1>")
		assert.Contains(t, out, "<title>Home</title>")
		assert.NotContains(t, out, "<hyraft")
	})

	t.Run("locals file", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "render", "index", "--root", dir,
			"--locals", filepath.Join(dir, "locals.yaml"))
		require.NoError(t, err)
		assert.Contains(t, out, "<h1>Hello Grace</h1>")
	})

	t.Run("styles", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "render", "articles/show", "--root", dir, "--set", "count=3")
		require.NoError(t, err)
		assert.Contains(t, out, "<article>3</article>")
		assert.Contains(t, out, `href="/css/site.css"`)
	})

	t.Run("unresolved placeholder", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "render", "index", "--root", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "<h1>Hello [.name.]</h1>")
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "render", "nope", "--root", dir)
		require.Error(t, err)
	})

	t.Run("invalid method", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "render", "index", "--root", dir, "--method", "rot13")
		require.ErrorIs(t, err, config.ErrInvalidMethod)
	})
}

func TestReadLocals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sets []string
		want map[string]any
	}{
		{name: "none", sets: nil, want: nil},
		{name: "string", sets: []string{"title=Hello world"}, want: map[string]any{"title": "Hello world"}},
		{name: "int", sets: []string{"count=3"}, want: map[string]any{"count": 3}},
		{name: "bool", sets: []string{"admin=true"}, want: map[string]any{"admin": true}},
		{name: "float", sets: []string{"ratio=0.5"}, want: map[string]any{"ratio": 0.5}},
		{name: "empty value", sets: []string{"q="}, want: map[string]any{"q": ""}},
		{name: "value with equals", sets: []string{"expr=a=b"}, want: map[string]any{"expr": "a=b"}},
		{name: "last wins", sets: []string{"n=1", "n=2"}, want: map[string]any{"n": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := readLocals("", tt.sets)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid set", func(t *testing.T) {
		t.Parallel()
		_, err := readLocals("", []string{"novalue"})
		require.ErrorIs(t, err, ErrInvalidSet)
	})

	t.Run("set overrides file", func(t *testing.T) {
		t.Parallel()
		dir := project(t)
		got, err := readLocals(filepath.Join(dir, "locals.yaml"), []string{"name=Ada"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Ada", "count": 2}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := readLocals(filepath.Join(t.TempDir(), "none.yaml"), nil)
		require.Error(t, err)
	})
}

func TestObfuscate(t *testing.T) {
	t.Parallel()
	dir := project(t)
	file := filepath.Join(dir, "app.js")

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "obfuscate", file, "--method", "none")
		require.NoError(t, err)
		assert.Contains(t, out, "// comment")
	})

	t.Run("multi layer", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "obfuscate", file, "--seed", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "document.createElement('script')")
		assert.NotContains(t, out, "// comment")
	})

	t.Run("seed is reproducible", func(t *testing.T) {
		t.Parallel()
		a, err := run(t, "", "obfuscate", file, "--seed", "7")
		require.NoError(t, err)
		b, err := run(t, "", "obfuscate", file, "--seed", "7")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "var x = 1;", "obfuscate", "-", "--method", "none")
		require.NoError(t, err)
		assert.Equal(t, "var x = 1;\n", out)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "  \n", "obfuscate", "-", "--method", "split")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "obfuscate", filepath.Join(dir, "none.js"))
		require.Error(t, err)
	})
}

func TestLibs(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "libs")
		require.NoError(t, err)
		assert.Contains(t, out, "lib/neonpulse")
	})

	t.Run("print", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "libs", "lib/neonpulse", "--method", "none")
		require.NoError(t, err)
		assert.Contains(t, out, "neonPulse")
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "libs", "lib/none")
		require.ErrorIs(t, err, ErrUnknownLibrary)
	})
}

func TestTemplates(t *testing.T) {
	t.Parallel()
	dir := project(t)

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "templates", "--root", dir)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "NAME"))
		assert.Contains(t, out, "articles/show")
		assert.Contains(t, out, "adapter-intake/home/display/index.hyr")
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "templates", "--root", dir, "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "name: index")
		assert.Contains(t, out, "app: home")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "templates", "--root", dir, "--format", "xml")
		require.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestVersion(t *testing.T) {
	t.Parallel()
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hyraft "))
}

func TestPreviewApp(t *testing.T) {
	t.Parallel()
	dir := project(t)

	cfg := config.Default()
	cfg.Root = dir
	c := &cli{cfg: cfg, log: logger.NewNope()}

	s, err := c.newStack(context.Background(), "")
	require.NoError(t, err)
	app := c.newApp(s, nil)
	t.Cleanup(func() { _ = s.Close() })

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{name: "index", path: "/", status: http.StatusOK, body: "<title>Home</title>"},
		{name: "nested template", path: "/articles/show", status: http.StatusOK, body: "<article>"},
		{name: "static file", path: "/css/site.css", status: http.StatusOK, body: "body{margin:0}"},
		{name: "missing template", path: "/nope", status: http.StatusNotFound},
		{name: "liveness", path: "/health/live", status: http.StatusOK},
		{name: "readiness", path: "/health/ready", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestPreviewAppCORS(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Root = project(t)
	cfg.CORSOrigins = []string{"http://localhost:1091"}
	c := &cli{cfg: cfg, log: logger.NewNope()}

	s, err := c.newStack(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	app := c.newApp(s, nil)

	for target, want := range map[string]string{
		"/api/articles": "http://localhost:1091",
		"/":             "",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Origin", "http://localhost:1091")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Header().Get("Access-Control-Allow-Origin"), target)
	}
}
