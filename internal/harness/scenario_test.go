package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ResolvesFixture(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/toolbar.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "scenarios", "fixtures", "page.yaml"), scenario.Fixture)
	assert.Len(t, scenario.Nodes, 1)
	require.NotNil(t, scenario.Steps[0].Expect)
	assert.Equal(t, "BUTTON", scenario.Steps[0].Expect.Name)
}

func TestLoadScenario_Errors(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
fixture: nowhere.yaml
steps:
  - op: count
`), 0o644))
	_, err = LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture file not found")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: d\nsteps: [{op: count}]\nasserts: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nsteps: [{op: count}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: a\nsteps: [{op: count}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: a\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "missing op",
			yaml:    "name: a\ndescription: d\nsteps: [{selector: p}]\n",
			wantErr: "steps[0]: op is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: a\ndescription: d\nsteps: [{op: closest}]\n",
			wantErr: `unknown op "closest"`,
		},
		{
			name:    "cast without kind",
			yaml:    "name: a\ndescription: d\nsteps: [{op: cast}]\n",
			wantErr: "kind is required for cast",
		},
		{
			name:    "cast to unknown kind",
			yaml:    "name: a\ndescription: d\nsteps: [{op: cast, kind: entity}]\n",
			wantErr: `unknown cast kind "entity"`,
		},
		{
			name:    "count with selector",
			yaml:    "name: a\ndescription: d\nsteps: [{op: count, selector: p}]\n",
			wantErr: "selector is not used by count",
		},
		{
			name:    "selector with root",
			yaml:    "name: a\ndescription: d\nsteps: [{op: selector, root: body}]\n",
			wantErr: "root is not used by selector",
		},
		{
			name:    "invalid inline node",
			yaml:    "name: a\ndescription: d\nnodes: [{kind: element}]\nsteps: [{op: count}]\n",
			wantErr: "nodes[0]: element requires a tag",
		},
		{
			name: "valid",
			yaml: "name: a\ndescription: d\nsteps: [{op: query, selector: p, expect: {found: false}}]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
