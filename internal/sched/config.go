package sched

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Algorithm names a scheduling policy as written in a config file.
type Algorithm string

const (
	FCFS     Algorithm = "FCFS"
	VRR      Algorithm = "VRR"
	SRT      Algorithm = "SRT"
	HRRN     Algorithm = "HRRN"
	Feedback Algorithm = "FEEDBACK"
)

// Option keys accepted in config files.
const (
	optQuantum       = "quantum"
	optNumPriorities = "num_priorities"
	optServiceGiven  = "service_given"
	optAlpha         = "alpha"
)

// requiredOptions lists, per algorithm, exactly the options it takes.
var requiredOptions = map[Algorithm][]string{
	FCFS:     {},
	VRR:      {optQuantum},
	SRT:      {optServiceGiven, optAlpha},
	HRRN:     {optServiceGiven, optAlpha},
	Feedback: {optQuantum, optNumPriorities},
}

// Policy is a validated scheduler configuration.
type Policy struct {
	Algorithm     Algorithm `yaml:"algorithm"`
	Quantum       int       `yaml:"quantum,omitempty"`        // VRR, FEEDBACK
	NumPriorities int       `yaml:"num_priorities,omitempty"` // FEEDBACK
	ServiceGiven  bool      `yaml:"service_given,omitempty"`  // SRT, HRRN
	Alpha         float64   `yaml:"alpha,omitempty"`          // SRT, HRRN
}

// Validate checks that the options match what the algorithm needs.
func (p Policy) Validate() error {
	if _, ok := requiredOptions[p.Algorithm]; !ok {
		return fmt.Errorf("%w: unknown algorithm %q", ErrMalformedConfig, p.Algorithm)
	}
	switch p.Algorithm {
	case FCFS:
		if p.Quantum != 0 || p.NumPriorities != 0 {
			return fmt.Errorf("%w: FCFS takes no options", ErrMalformedConfig)
		}
	case VRR:
		if p.Quantum <= 0 {
			return fmt.Errorf("%w: quantum must be positive, got %d", ErrMalformedConfig, p.Quantum)
		}
		if p.NumPriorities != 0 {
			return fmt.Errorf("%w: VRR does not take num_priorities", ErrMalformedConfig)
		}
	case Feedback:
		if p.Quantum <= 0 {
			return fmt.Errorf("%w: quantum must be positive, got %d", ErrMalformedConfig, p.Quantum)
		}
		if p.NumPriorities <= 0 {
			return fmt.Errorf("%w: num_priorities must be positive, got %d", ErrMalformedConfig, p.NumPriorities)
		}
	case SRT, HRRN:
		if !(p.Alpha >= 0 && p.Alpha <= 1) { // also rejects NaN
			return fmt.Errorf("%w: alpha must be between 0 and 1, got %v", ErrMalformedConfig, p.Alpha)
		}
		if p.Quantum != 0 || p.NumPriorities != 0 {
			return fmt.Errorf("%w: %s takes only service_given and alpha", ErrMalformedConfig, p.Algorithm)
		}
	}
	return nil
}

func (p Policy) String() string {
	switch p.Algorithm {
	case VRR:
		return fmt.Sprintf("VRR(quantum=%d)", p.Quantum)
	case Feedback:
		return fmt.Sprintf("FEEDBACK(quantum=%d, num_priorities=%d)", p.Quantum, p.NumPriorities)
	case SRT, HRRN:
		return fmt.Sprintf("%s(service_given=%t, alpha=%v)", p.Algorithm, p.ServiceGiven, p.Alpha)
	default:
		return string(p.Algorithm)
	}
}

// LoadPolicy reads a scheduler file. Files ending in .yml or .yaml are
// parsed as YAML; anything else uses the line format, where the first
// line is the algorithm and each following line is "option = value".
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading scheduler file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParsePolicyYAML(data)
	default:
		return ParsePolicy(data)
	}
}

// rawPolicy records which options were actually written, so a missing
// option can be told apart from a zero value.
type rawPolicy struct {
	Algorithm     string   `yaml:"algorithm"`
	Quantum       *int     `yaml:"quantum"`
	NumPriorities *int     `yaml:"num_priorities"`
	ServiceGiven  *bool    `yaml:"service_given"`
	Alpha         *float64 `yaml:"alpha"`
}

// ParsePolicyYAML parses a YAML scheduler config. Unknown keys are rejected.
func ParsePolicyYAML(data []byte) (Policy, error) {
	var raw rawPolicy
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.DisallowUnknownField()); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	return raw.policy()
}

// ParsePolicy parses the line-oriented scheduler format.
func ParsePolicy(data []byte) (Policy, error) {
	var raw rawPolicy
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if raw.Algorithm == "" {
			raw.Algorithm = line
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Policy{}, fmt.Errorf("%w: invalid scheduler option at line %d", ErrMalformedConfig, lineNumber)
		}
		if err := raw.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return Policy{}, fmt.Errorf("%w at line %d", err, lineNumber)
		}
	}
	if err := sc.Err(); err != nil {
		return Policy{}, fmt.Errorf("reading scheduler file: %w", err)
	}
	return raw.policy()
}

func (r *rawPolicy) set(key, value string) error {
	if !r.accepts(key) {
		return fmt.Errorf("%w: option %q not valid for %q", ErrMalformedConfig, key, r.Algorithm)
	}
	if r.has(key) {
		return fmt.Errorf("%w: option %q given twice", ErrMalformedConfig, key)
	}
	switch key {
	case optQuantum, optNumPriorities:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrMalformedConfig, key, value)
		}
		if key == optQuantum {
			r.Quantum = &n
		} else {
			r.NumPriorities = &n
		}
	case optServiceGiven:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: service_given must be a boolean, got %q", ErrMalformedConfig, value)
		}
		r.ServiceGiven = &b
	case optAlpha:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: alpha must be a number, got %q", ErrMalformedConfig, value)
		}
		r.Alpha = &f
	}
	return nil
}

func (r *rawPolicy) accepts(key string) bool {
	for _, k := range requiredOptions[Algorithm(r.Algorithm)] {
		if k == key {
			return true
		}
	}
	return false
}

func (r *rawPolicy) has(key string) bool {
	switch key {
	case optQuantum:
		return r.Quantum != nil
	case optNumPriorities:
		return r.NumPriorities != nil
	case optServiceGiven:
		return r.ServiceGiven != nil
	case optAlpha:
		return r.Alpha != nil
	}
	return false
}

// policy checks the option set is exactly what the algorithm requires
// and converts to a validated Policy.
func (r *rawPolicy) policy() (Policy, error) {
	alg := Algorithm(strings.TrimSpace(r.Algorithm))
	required, ok := requiredOptions[alg]
	if !ok {
		return Policy{}, fmt.Errorf("%w: unknown algorithm %q", ErrMalformedConfig, r.Algorithm)
	}
	r.Algorithm = string(alg)

	given := 0
	for _, key := range []string{optQuantum, optNumPriorities, optServiceGiven, optAlpha} {
		if !r.has(key) {
			continue
		}
		if !r.accepts(key) {
			return Policy{}, fmt.Errorf("%w: option %q not valid for %s", ErrMalformedConfig, key, alg)
		}
		given++
	}
	if given != len(required) {
		return Policy{}, fmt.Errorf("%w: %s requires options %v", ErrMalformedConfig, alg, required)
	}

	p := Policy{Algorithm: alg}
	if r.Quantum != nil {
		p.Quantum = *r.Quantum
	}
	if r.NumPriorities != nil {
		p.NumPriorities = *r.NumPriorities
	}
	if r.ServiceGiven != nil {
		p.ServiceGiven = *r.ServiceGiven
	}
	if r.Alpha != nil {
		p.Alpha = *r.Alpha
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
