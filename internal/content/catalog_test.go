package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rheo/rheo/internal/exercise"
)

func TestDefaultPackIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "v1", SupportedMajor)
	assert.Len(t, c.Languages, 3)
	assert.Len(t, c.Nodes("python"), 42)

	counts := c.Count("python")
	for _, k := range exercise.AllKinds() {
		assert.Positive(t, counts[k], "no %s exercises in the default pack", k)
	}
}

func TestExercises_FallsBackToPython(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	py := c.Exercises(1, "python")
	js := c.Exercises(1, "javascript")
	require.NotEmpty(t, py)
	assert.Equal(t, py, js)
	assert.False(t, c.Has(1, "javascript"))
}

func TestExercises_ComingSoon(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	exs := c.Exercises(999, "python")
	require.Len(t, exs, 1)
	assert.Equal(t, exercise.KindTrace, exs[0].Kind())
	assert.Contains(t, exs[0].Prompt(), "Coming soon")

	_, err = c.Lookup(999, "python")
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestExercises_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	exs := c.Exercises(1, "python")
	exs[0] = exercise.Descriptor{}
	assert.NotNil(t, c.Exercises(1, "python")[0].Payload)
}

const minimalPack = `{
	"version": %q,
	"languages": [{"id":"python","name":"Python"}],
	"lessons": {"python": {"1": [%s]}}
}`

func packWith(version, ex string) []byte {
	return []byte(fmt.Sprintf(minimalPack, version, ex))
}

func TestParse(t *testing.T) {
	okTrace := `{"type":"trace","prompt":"p","code":[{"text":"x"}],"options":["a","b"],"correct":1}`

	tests := []struct {
		name    string
		raw     []byte
		wantErr error
		errText string
	}{
		{name: "minimal", raw: packWith("v1.2.0", okTrace)},
		{name: "major bump", raw: packWith("v2.0.0", okTrace), wantErr: ErrIncompatibleVersion},
		{name: "schema rejects unknown type", raw: packWith("v1.0.0", `{"type":"quiz"}`), errText: "schema"},
		{name: "schema rejects missing field", raw: packWith("v1.0.0", `{"type":"trace","prompt":"p"}`), errText: "schema"},
		{name: "structural check", raw: packWith("v1.0.0", `{"type":"trace","prompt":"p","code":[],"options":["a"],"correct":4}`), wantErr: exercise.ErrInvalid},
		{name: "not json", raw: []byte(`{`), errText: "not valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.raw)
			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Len(t, c.Exercises(1, "python"), 1)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pack.json")
	require.NoError(t, os.WriteFile(p, packWith("v1.0.0", `{"type":"video","title":"Intro","description":"d"}`), 0o644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, exercise.KindVideo, c.Exercises(1, "python")[0].Kind())

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
