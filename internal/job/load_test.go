package job

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidLines_AssignsPIDsInOrder(t *testing.T) {
	// GIVEN two process lines separated by a blank line
	input := "0 5 3 2\n\n4 6\n"

	// WHEN parsed
	specs, err := Parse(strings.NewReader(input))

	// THEN both are returned with pids 0 and 1
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, Spec{PID: 0, Arrival: 0, Bursts: []int{5, 3, 2}}, specs[0])
	assert.Equal(t, Spec{PID: 1, Arrival: 4, Bursts: []int{6}}, specs[1])
}

func TestParse_MalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"only arrival", "3\n"},
		{"missing final cpu burst", "0 5 3\n"},
		{"non numeric", "0 5 x 2\n"},
		{"negative sign", "0 -5\n"},
		{"zero burst", "0 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedProcess)
		})
	}
}

func TestParse_ErrorNamesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("0 1\n2 3 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseYAML_Valid(t *testing.T) {
	data := []byte(`
processes:
  - arrival: 0
    bursts: [5, 3, 2]
  - arrival: 2
    bursts: [4]
`)
	specs, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, 1, specs[1].PID)
	assert.Equal(t, []int{4}, specs[1].Bursts)
}

func TestParseYAML_EvenBursts_Rejected(t *testing.T) {
	_, err := ParseYAML([]byte("processes:\n  - arrival: 0\n    bursts: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrMalformedProcess)
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	pf := filepath.Join(dir, "example.pf")
	yml := filepath.Join(dir, "example.yaml")
	require.NoError(t, os.WriteFile(pf, []byte("1 2 3 4\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("processes:\n  - arrival: 1\n    bursts: [2, 3, 4]\n"), 0o644))

	fromText, err := Load(pf)
	require.NoError(t, err)
	fromYAML, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, fromText, fromYAML)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.pf"))
	assert.Error(t, err)
}

func TestSpec_CPUTime_SumsEvenPositions(t *testing.T) {
	s := Spec{Bursts: []int{5, 100, 2, 100, 1}}
	assert.Equal(t, 8, s.CPUTime())
}

func TestParseYAML_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a process whose arrival key is misspelled
	data := []byte("processes:\n  - arival: 7\n    bursts: [3]\n")

	// WHEN parsed
	specs, err := ParseYAML(data)

	// THEN it is refused rather than read as an arrival at 0
	assert.ErrorIs(t, err, ErrMalformedProcess)
	assert.Nil(t, specs)
}

func TestSpec_Validate_RejectsTickOverflow(t *testing.T) {
	s := Spec{Arrival: math.MaxInt - 2, Bursts: []int{5}}
	assert.ErrorIs(t, s.Validate(), ErrMalformedProcess)
}

func TestHorizon(t *testing.T) {
	h, err := Horizon([]Spec{
		{PID: 0, Arrival: 0, Bursts: []int{5, 3, 2}},
		{PID: 1, Arrival: 4, Bursts: []int{6}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4+16, h)

	// each spec fits on its own, but together they cannot run to completion
	_, err = Horizon([]Spec{
		{PID: 0, Arrival: 0, Bursts: []int{math.MaxInt / 2}},
		{PID: 1, Arrival: math.MaxInt / 2, Bursts: []int{math.MaxInt / 2}},
	})
	assert.ErrorIs(t, err, ErrMalformedProcess)
}
