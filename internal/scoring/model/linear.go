// Package model loads trained scoring regressors.
//
// A model file is YAML describing a standard scaler followed by a linear
// regressor over a named feature vector:
//
//	name: ats
//	features:
//	  - name: has_email
//	    direction: 1
//	scaler:
//	  mean: [0.6]
//	  scale: [0.49]
//	coefficients: [4.1]
//	intercept: 52.3
//
// Direction declares how the score must respond to the feature: 1 never
// decreases, -1 never increases, 0 is unconstrained.
package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrShape is returned when vector lengths in a model disagree.
	ErrShape = errors.New("model shape mismatch")
	// ErrNotMonotone is returned when a coefficient contradicts its feature direction.
	ErrNotMonotone = errors.New("model violates feature direction")
)

// Feature names one input of the model and its required direction.
type Feature struct {
	Name      string `yaml:"name"`
	Direction int    `yaml:"direction"`
}

// Scaler standardises inputs as (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Linear is a scaled linear regressor. It is read-only after loading.
type Linear struct {
	Name         string    `yaml:"name"`
	Version      string    `yaml:"version"`
	Features     []Feature `yaml:"features"`
	Scaler       Scaler    `yaml:"scaler"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

// Load reads and validates a model file.
func Load(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %q: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", path, err)
	}
	return m, nil
}

// Parse decodes a model from YAML and validates its shape and directions.
func Parse(data []byte) (*Linear, error) {
	var m Linear
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Linear) validate() error {
	n := len(m.Features)
	if n == 0 {
		return fmt.Errorf("%w: no features", ErrShape)
	}
	if len(m.Coefficients) != n || len(m.Scaler.Mean) != n || len(m.Scaler.Scale) != n {
		return fmt.Errorf("%w: %d features, %d coefficients, %d means, %d scales",
			ErrShape, n, len(m.Coefficients), len(m.Scaler.Mean), len(m.Scaler.Scale))
	}
	for i, s := range m.Scaler.Scale {
		if s <= 0 {
			return fmt.Errorf("%w: scale for %q must be positive", ErrShape, m.Features[i].Name)
		}
	}
	return m.CheckMonotone()
}

// CheckMonotone reports features whose coefficient sign contradicts their direction.
func (m *Linear) CheckMonotone() error {
	var bad []string
	for i, f := range m.Features {
		c := m.Coefficients[i]
		if (f.Direction > 0 && c < 0) || (f.Direction < 0 && c > 0) {
			bad = append(bad, f.Name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrNotMonotone, strings.Join(bad, ", "))
	}
	return nil
}

// Compatible checks that the model consumes exactly the given features in order
// and declares the given directions for them.
func (m *Linear) Compatible(names []string, directions []int) error {
	if len(names) != len(m.Features) {
		return fmt.Errorf("%w: model has %d features, scorer produces %d", ErrShape, len(m.Features), len(names))
	}
	for i, name := range names {
		f := m.Features[i]
		if f.Name != name {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrShape, i, f.Name, name)
		}
		if i < len(directions) && directions[i] != 0 && f.Direction != directions[i] {
			return fmt.Errorf("%w: feature %q declares direction %d, want %d", ErrNotMonotone, name, f.Direction, directions[i])
		}
	}
	return nil
}

// Predict returns the raw regression output for x.
func (m *Linear) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d inputs, want %d", ErrShape, len(x), len(m.Coefficients))
	}
	y := m.Intercept
	for i, v := range x {
		y += m.Coefficients[i] * (v - m.Scaler.Mean[i]) / m.Scaler.Scale[i]
	}
	return y, nil
}
