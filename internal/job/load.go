package job

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// ErrMalformedProcess is wrapped by every process-file validation failure.
var ErrMalformedProcess = errors.New("malformed process record")

// processFile mirrors the YAML process file layout.
type processFile struct {
	Processes []Spec `yaml:"processes"`
}

// Load reads a process file. Files ending in .yml or .yaml are parsed as
// YAML, anything else as the line format: "arrival burst burst ...".
func Load(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading process file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return Parse(bytes.NewReader(data))
	}
}

// Parse reads the line format. Each non-blank line is one process; the
// first field is the arrival time and the rest are burst durations.
// PIDs follow line order, skipping blank lines.
func Parse(r io.Reader) ([]Spec, error) {
	var specs []Spec
	sc := bufio.NewScanner(r)
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: missing activities or arrival time at line %d", ErrMalformedProcess, lineNumber)
		}
		// arrival + odd number of bursts = even number of fields
		if len(fields)%2 == 1 {
			return nil, fmt.Errorf("%w: no final CPU activity at line %d", ErrMalformedProcess, lineNumber)
		}

		values := make([]int, len(fields))
		for i, f := range fields {
			v, err := parseDigits(f)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid field %q at line %d", ErrMalformedProcess, f, lineNumber)
			}
			values[i] = v
		}

		spec := Spec{PID: len(specs), Arrival: values[0], Bursts: values[1:]}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		specs = append(specs, spec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading process file: %w", err)
	}
	return specs, nil
}

// ParseYAML reads a "processes:" list. PIDs follow list order and
// unknown keys are rejected.
func ParseYAML(data []byte) ([]Spec, error) {
	var pf processFile
	if err := yaml.UnmarshalWithOptions(data, &pf, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProcess, err)
	}
	for i := range pf.Processes {
		pf.Processes[i].PID = i
		if err := pf.Processes[i].Validate(); err != nil {
			return nil, err
		}
	}
	return pf.Processes, nil
}

// parseDigits accepts only plain decimal digits, no sign.
func parseDigits(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
	}
	return strconv.Atoi(s)
}
