package apply

import (
	"fmt"
	"os"

	"picgrade/grade"

	"gopkg.in/yaml.v3"
)

// loadSettings reads a YAML or JSON settings document. Fields missing from
// the document keep their default values.
func loadSettings(path string) (grade.Settings, error) {
	s := grade.Default()
	if path == "" {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read settings %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("could not decode settings %q: %w", path, err)
	}
	return s, nil
}

func loadPatch(path string) (grade.Patch, error) {
	var p grade.Patch

	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("could not read patch %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("could not decode patch %q: %w", path, err)
	}
	return p, nil
}

func loadSuggestion(path string) (grade.Patch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return grade.Patch{}, fmt.Errorf("could not read suggestion %q: %w", path, err)
	}

	p, err := grade.ParseSuggestion(string(b))
	if err != nil {
		return p, fmt.Errorf("could not parse suggestion %q: %w", path, err)
	}
	return p, nil
}
