package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rdom/internal/fixture"
)

// Scenario defines a query scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is an optional fixture file applied to the document first.
	// LoadScenario resolves it relative to the scenario file.
	Fixture string `yaml:"fixture,omitempty"`

	// Nodes are inline trees applied after Fixture.
	Nodes []fixture.Tree `yaml:"nodes,omitempty"`

	// Steps run in order against the built document.
	Steps []Step `yaml:"steps"`

	// SandboxID is the fixed sandbox ID. Defaults to "sandbox-test".
	SandboxID string `yaml:"sandbox_id,omitempty"`
}

// Step is one operation against the document.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Root selects the node the step runs on. Empty means the document.
	Root string `yaml:"root,omitempty"`

	// Selector is the query selector (query, query_all, selector).
	Selector string `yaml:"selector,omitempty"`

	// Kind is the target kind for cast, using fixture kind names plus
	// "document".
	Kind string `yaml:"kind,omitempty"`

	// Expect is the subset of the outcome to check. Nil skips checking.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists expected outcome fields. Unset fields are not checked.
type Expect struct {
	Found *bool  `yaml:"found,omitempty"`
	Count *int   `yaml:"count,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// Step operations.
const (
	OpQuery             = "query"
	OpQueryAll          = "query_all"
	OpCount             = "count"
	OpChildElementCount = "child_element_count"
	OpSelector          = "selector"
	OpCast              = "cast"
)

// KindDocument names the document as a cast target.
const KindDocument = "document"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}
	if scenario.Fixture != "" {
		if _, err := os.Stat(scenario.Fixture); err != nil {
			return nil, fmt.Errorf("invalid scenario: fixture file not found: %s", scenario.Fixture)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Fixture paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, tree := range s.Nodes {
		if err := tree.Validate(fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Op {
	case OpQuery, OpQueryAll, OpSelector:
		// The empty selector is valid and matches nothing.
	case OpCount, OpChildElementCount:
		if s.Selector != "" {
			return fmt.Errorf("steps[%d]: selector is not used by %s", index, s.Op)
		}
	case OpCast:
		if s.Kind == "" {
			return fmt.Errorf("steps[%d]: kind is required for cast", index)
		}
		if _, ok := casts[s.Kind]; !ok {
			return fmt.Errorf("steps[%d]: unknown cast kind %q", index, s.Kind)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}
	if s.Op == OpSelector && s.Root != "" {
		return fmt.Errorf("steps[%d]: root is not used by selector", index)
	}
	return nil
}
