package scoring

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// LoadRubric reads a rubric YAML file, layering it over the defaults. A
// missing file is not an error, it simply yields the default rubric, so
// callers can always point at ~/.adr/rubric.yaml.
func LoadRubric(path string) (Rubric, error) {
	rubric := DefaultRubric()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return rubric, nil
	}
	if err != nil {
		return rubric, fmt.Errorf("reading rubric file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rubric); err != nil {
		return DefaultRubric(), fmt.Errorf("parsing rubric file: %w", err)
	}
	if err := validateRubric(rubric); err != nil {
		return DefaultRubric(), fmt.Errorf("invalid rubric file: %w", err)
	}
	return rubric, nil
}

// validateRubric checks that every configured regex compiles, so a bad
// pattern fails at load time instead of silently scoring zero.
func validateRubric(r Rubric) error {
	for _, d := range []DimensionRubric{r.Context, r.Decision, r.Consequences, r.Status} {
		checks := append([]PatternCheck{d.Heading}, d.Phrases...)
		for _, c := range checks {
			if c.Pattern == "" {
				continue
			}
			if _, err := regexp.Compile(c.Pattern); err != nil {
				return fmt.Errorf("dimension %s: pattern %q: %w", d.Name, c.Pattern, err)
			}
		}
	}
	return nil
}
