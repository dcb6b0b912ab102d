package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-toml"
)

// Every file under testdata must survive a parse/serialize round trip
// byte-for-byte; the input is its own golden file.
func TestRoundTrip(t *testing.T) {
	files, err := filepath.Glob("testdata/*.toml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			doc, err := toml.Parse(src)
			require.NoError(t, err)

			out := doc.String()
			if out != string(src) {
				t.Fatalf("round-trip mismatch:\n%s", diff.Diff(string(src), out))
			}
		})
	}
}

// Re-parsing serialized output must succeed and serialize identically.
func TestReparseIdempotent(t *testing.T) {
	files, err := filepath.Glob("testdata/*.toml")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			doc, err := toml.Parse(src)
			require.NoError(t, err)

			again, err := toml.Parse([]byte(doc.String()))
			require.NoError(t, err)
			require.Equal(t, doc.String(), again.String())
		})
	}
}

func TestRoundTripInline(t *testing.T) {
	inputs := []string{
		"",
		"a = 1",
		"a = 1\n",
		"key='value'   # comment\n",
		"  indented = true\r\n",
		"arr = [1,]\n",
		"arr = [\n  # leading comment\n  1 ,\n  2,# tight comment\n]\n",
		"t = {  }\n",
		"t = { a = 1 , b.c = 'x' }\n",
		"[ spaced . header ]  # why not\nk = 1\n",
		"[[aot]]\n[[aot]]\n\n[[aot]]\n",
		"a.'b'.\"c\" = 42\n",
		"s = \"\"\"\n\ttabbed\n\"\"\"\n",
	}
	for _, input := range inputs {
		doc, err := toml.Parse([]byte(input))
		require.NoError(t, err, "input %q", input)
		require.Equal(t, input, doc.String(), "input %q", input)
	}
}
