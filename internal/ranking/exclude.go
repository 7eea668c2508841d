package ranking

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Excluded is the content of an exclude file: résumés that should not be
// ranked again.
type Excluded struct {
	Items []*ExcludedResume `yaml:"items"`
}

type ExcludedResume struct {
	Name       string    `yaml:"name"`
	Path       string    `yaml:"path,omitempty"`
	Grade      string    `yaml:"grade,omitempty"`
	Reason     string    `yaml:"reason,omitempty"`
	ExcludedAt time.Time `yaml:"excluded_at,omitempty"`
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*Excluded, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}

	var excluded Excluded
	if err := yaml.Unmarshal(data, &excluded); err != nil {
		return nil, fmt.Errorf("parse exclude file %q: %w", path, err)
	}
	return &excluded, nil
}

func (e *Excluded) Append(s *Excluded) {
	e.Items = append(e.Items, s.Items...)
}

// Matches reports whether the candidate is listed by name or by path.
func (e *Excluded) Matches(c *Candidate) bool {
	for _, item := range e.Items {
		if item.Name != "" && item.Name == c.Name {
			return true
		}
		if item.Path != "" && item.Path == c.Path {
			return true
		}
	}
	return false
}

// ToFile replaces the file at path with the YAML form of e.
func (e *Excluded) ToFile(path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
