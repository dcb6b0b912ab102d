package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-toml"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the round-trip files so the fuzzer starts
	// from valid syntax.
	seedFiles, err := filepath.Glob("testdata/*.toml")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}
	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	f.Add([]byte(""))
	f.Add([]byte("a = 1"))
	f.Add([]byte("a.b = 'c'\n"))
	f.Add([]byte("[t]\nx = [1, {y = 2}]\n"))
	f.Add([]byte("[[a]]\n[[a]]\n"))
	f.Add([]byte("s = \"\"\"\nmulti\"\"\""))

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := toml.Parse(data)
		if err != nil {
			// Invalid input; the interesting failures are panics, which
			// the fuzz engine catches on its own.
			return
		}

		// Anything that parses must serialize back byte-for-byte.
		out := doc.String()
		require.Equal(t, string(data), out, "parse/serialize round trip changed the bytes")

		// And what we emitted must parse again to the same text.
		again, err := toml.Parse([]byte(out))
		require.NoError(t, err, "re-parse of our own output failed")
		require.Equal(t, out, again.String())
	})
}
