package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bnbgo/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testLoader(environ ...string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

func TestLoad_FullProject(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "bnbgo.hcl", `
sources = ["docs", "/abs/extra.bnb"]
output  = "yaml"

resolve {
  include_places = true
  region_match   = "normalized"
}

layout {
  width  = 240
  height = 160
}

place "Home" {
  width  = 400
  height = 300
}

publish {
  url   = lookup(env, "BNB_RENDERER", "http://localhost:3000/")
  event = upper("update")
}
`)

	// --- Act ---
	m, err := testLoader("BNB_RENDERER=http://renderer:8080/socket.io/").Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "docs"), "/abs/extra.bnb"}, m.Sources)
	assert.Equal(t, "yaml", m.Output)
	assert.Equal(t, config.Resolve{IncludePlaces: true, RegionMatch: "normalized"}, m.Resolve)
	assert.Equal(t, config.Size{Width: 240, Height: 160}, m.Layout)
	assert.Equal(t, map[string]config.Size{"Home": {Width: 400, Height: 300}}, m.Places)
	require.NotNil(t, m.Publish)
	assert.Equal(t, &config.Publish{
		URL:       "http://renderer:8080/socket.io/",
		Namespace: "/",
		Event:     "UPDATE",
	}, m.Publish)
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bnbgo.hcl", `
publish {
  url = lookup(env, "BNB_RENDERER", "http://localhost:3000/")
}
`)

	m, err := testLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/", m.Publish.URL)
}

func TestLoad_MissingPathIsEmpty(t *testing.T) {
	t.Parallel()

	m, err := testLoader().Load(context.Background(), filepath.Join(t.TempDir(), "bnbgo.hcl"))

	require.NoError(t, err)
	assert.Empty(t, m.Sources)
	assert.Nil(t, m.Publish)
	assert.Zero(t, m.Layout)
}

func TestLoad_LaterFilesOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.hcl", "output = \"json\"\nsources = [\"a\"]\n")
	b := writeFile(t, dir, "b.hcl", "output = \"yaml\"\n")

	m, err := testLoader().Load(context.Background(), a, b)

	require.NoError(t, err)
	assert.Equal(t, "yaml", m.Output)
	assert.Equal(t, []string{filepath.Join(dir, "a")}, m.Sources)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		err     string
	}{
		{
			name:    "syntax error",
			content: "resolve {\n",
			err:     "failed to parse HCL file",
		},
		{
			name:    "unknown attribute",
			content: "colour = \"blue\"\n",
			err:     "failed to decode HCL file",
		},
		{
			name:    "wrong type",
			content: "layout {\n  width = \"wide\"\n  height = 1\n}\n",
			err:     "failed to decode HCL file",
		},
		{
			name:    "non-positive size",
			content: "place \"Home\" {\n  width = 0\n  height = 10\n}\n",
			err:     `place "Home": width and height must be positive`,
		},
		{
			name:    "unknown env variable",
			content: "output = env.NOPE\n",
			err:     "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "bnbgo.hcl", tc.content)

			_, err := testLoader().Load(context.Background(), path)

			assert.ErrorContains(t, err, tc.err)
		})
	}
}
