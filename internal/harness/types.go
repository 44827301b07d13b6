package harness

// TraceEvent records what one step observed.
//
// Fields are declared in key order so the JSON encoding has sorted keys.
type TraceEvent struct {
	Count    *int   `json:"count,omitempty"`
	Error    string `json:"error,omitempty"`
	Found    *bool  `json:"found,omitempty"`
	Name     string `json:"name,omitempty"`
	Op       string `json:"op"`
	Root     string `json:"root,omitempty"`
	Selector string `json:"selector,omitempty"`
	Seq      int64  `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every expect clause matched.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// SnapshotHash is the hash of the document after all steps.
	SnapshotHash string `json:"snapshot_hash"`

	// Nodes is the number of nodes under the document, inclusive.
	Nodes int `json:"nodes"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
