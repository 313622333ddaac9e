package codec

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/bnbgo/internal/compiler"
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
)

const doc = `
/// The front door.
place Registration
  include Header
  Username
  "yes" -> (maybe) Home
  Sign Up -> (success) Home
          -> (failure) Support
  - Terms -> Support
  sketch sketches/registration.png
    [50,20 110,40] Sign Up

place Support
  Try Again -> Registration
  position > Registration + 20

place Home
  position 0, ^ Registration - 12.5

component Header
  Logo
`

func compiled(t *testing.T) *model.Breadboard {
	t.Helper()
	c := compiler.New(compiler.Options{Anchors: map[string]model.Point{"Registration": {X: 10, Y: 20}}})
	bb, err := c.Compile(context.Background(), compiler.Source{Name: "doc.bnb", Text: []byte(doc)})
	require.NoError(t, err)
	return bb
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			bb := compiled(t)

			// --- Act ---
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, bb, f))
			got, err := Decode(&buf, f)

			// --- Assert ---
			require.NoError(t, err)
			diff := cmp.Diff(bb, got, cmpopts.IgnoreTypes(diag.Pos{}), cmpopts.EquateEmpty())
			assert.Empty(t, diff)
			require.NotNil(t, got.Place("Support").Point)
		})
	}
}

func TestMarshal_JSONShape(t *testing.T) {
	t.Parallel()

	out, err := Marshal(compiled(t), JSON)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"id": "place:Registration"`)
	assert.Contains(t, s, `"targetId": "place:Home"`)
	assert.Contains(t, s, `"pivot": "top"`)
	assert.Contains(t, s, `"description": "The front door."`)
	assert.NotContains(t, s, "filename", "source positions are not serialized")
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
		f    Format
		err  string
	}{
		{name: "unknown field", data: `{"places": [], "bogus": 1}`, f: JSON, err: "unknown field"},
		{name: "bad pivot", data: `{"places": [{"position": {"x": {"pivot": "middle"}}}]}`, f: JSON, err: "unknown pivot"},
		{name: "bad yaml", data: "places: [", f: YAML, err: "failed to decode yaml"},
		{name: "bad format", data: "{}", f: Format("toml"), err: "unsupported format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal([]byte(tc.data), tc.f)
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": JSON, "JSON": JSON, "yaml": YAML, "yml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}
