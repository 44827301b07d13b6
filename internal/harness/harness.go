package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/rdom/internal/config"
	"github.com/roach88/rdom/internal/dom"
	"github.com/roach88/rdom/internal/fixture"
	"github.com/roach88/rdom/internal/snapshot"
	"github.com/roach88/rdom/internal/testutil"
)

// ErrCodeRootNotFound is reported when a step's root selector matches
// nothing.
const ErrCodeRootNotFound = "ROOT_NOT_FOUND"

var errRootNotFound = errors.New(ErrCodeRootNotFound)

// Harness executes the steps of one scenario against one document.
type Harness struct {
	sandbox *dom.Sandbox
	doc     dom.DocumentNode
	steps   *testutil.StepCounter
	logger  *slog.Logger
}

// Option configures a run.
type Option func(*runOptions)

type runOptions struct {
	logger  *slog.Logger
	metrics config.ScreenMetrics
}

// WithLogger sets the logger for the harness and the scenario's sandbox.
func WithLogger(logger *slog.Logger) Option {
	return func(o *runOptions) { o.logger = logger }
}

// WithMetrics sets the screen metrics of the scenario's sandbox.
func WithMetrics(metrics config.ScreenMetrics) Option {
	return func(o *runOptions) { o.metrics = metrics }
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh sandbox with a fixed ID, which is closed
// before Run returns. Expectation mismatches are reported in the Result;
// the error is only for scenarios that cannot run at all, such as an
// invalid step or a missing fixture.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	o := runOptions{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: config.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	sb := dom.New(o.metrics,
		dom.WithLogger(o.logger),
		dom.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.SandboxID)),
	)
	defer sb.Close()

	h := &Harness{
		sandbox: sb,
		doc:     sb.Window().Document(),
		steps:   testutil.NewStepCounter(),
		logger:  o.logger.With("scenario", scenario.Name),
	}

	if err := h.build(scenario); err != nil {
		return nil, err
	}

	result := NewResult(scenario.Name)
	for i, step := range scenario.Steps {
		h.execute(i, step, result)
	}

	snap := snapshot.Take(h.doc)
	hash, err := snap.Hash()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	result.SnapshotHash = hash
	result.Nodes = len(snap.Entries)

	h.logger.Debug("scenario finished", "pass", result.Pass, "steps", h.steps.Current())
	return result, nil
}

// RunAll runs scenarios concurrently, at most limit at a time (no limit
// when limit <= 0). Results are returned in input order. The first
// scenario that cannot run cancels the rest.
func RunAll(ctx context.Context, scenarios []*Scenario, limit int, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Run(sc, opts...)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (h *Harness) build(scenario *Scenario) error {
	if scenario.Fixture != "" {
		trees, err := fixture.LoadFile(scenario.Fixture)
		if err != nil {
			return fmt.Errorf("load fixture: %w", err)
		}
		if _, err := fixture.Apply(h.doc, trees...); err != nil {
			return fmt.Errorf("apply fixture: %w", err)
		}
	}
	if _, err := fixture.Apply(h.doc, scenario.Nodes...); err != nil {
		return fmt.Errorf("apply nodes: %w", err)
	}
	return nil
}

func (h *Harness) execute(index int, step Step, result *Result) {
	ev := TraceEvent{
		Op:       step.Op,
		Root:     step.Root,
		Selector: step.Selector,
		Seq:      h.steps.Next(),
	}
	if err := h.observe(step, &ev); err != nil {
		ev.Error = errorCode(err)
	}
	result.Trace = append(result.Trace, ev)

	h.logger.Debug("step executed", "seq", ev.Seq, "op", ev.Op, "error", ev.Error)

	if step.Expect != nil {
		for _, msg := range checkExpect(step.Expect, ev) {
			result.AddError(fmt.Sprintf("steps[%d] (%s): %s", index, step.Op, msg))
		}
	}
}

func (h *Harness) observe(step Step, ev *TraceEvent) error {
	if step.Op == OpSelector {
		sel, err := dom.ParseSelector(step.Selector)
		if err != nil {
			return err
		}
		ev.Name = sel.String()
		return nil
	}

	root, err := h.resolveRoot(step.Root)
	if err != nil {
		return err
	}

	switch step.Op {
	case OpQuery:
		el, ok, err := root.QuerySelector(step.Selector)
		if err != nil {
			return err
		}
		ev.Found = &ok
		if ok {
			ev.Name = el.TagName()
		}
	case OpQueryAll:
		list, err := root.QuerySelectorAll(step.Selector)
		if err != nil {
			return err
		}
		n := list.Length()
		ev.Count = &n
	case OpCount:
		n := root.ChildNodes().Length()
		ev.Count = &n
	case OpChildElementCount:
		n, err := root.ChildElementCount()
		if err != nil {
			return err
		}
		ev.Count = &n
	case OpCast:
		cast, ok := casts[step.Kind]
		if !ok {
			return fmt.Errorf("unknown cast kind %q", step.Kind)
		}
		name, err := cast(root)
		if err != nil {
			return err
		}
		ev.Name = name
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func (h *Harness) resolveRoot(root string) (dom.AnyNode, error) {
	if root == "" {
		return h.doc.Any(), nil
	}
	el, ok, err := h.doc.QuerySelector(root)
	if err != nil {
		return dom.AnyNode{}, err
	}
	if !ok {
		return dom.AnyNode{}, fmt.Errorf("%w: %q", errRootNotFound, root)
	}
	return el.Any(), nil
}

var casts = map[string]func(dom.AnyNode) (string, error){
	fixture.KindElement:               castTo[*dom.ElementStore],
	fixture.KindAttribute:             castTo[*dom.AttributeStore],
	fixture.KindText:                  castTo[*dom.TextStore],
	fixture.KindCDataSection:          castTo[*dom.CDataSectionStore],
	fixture.KindProcessingInstruction: castTo[*dom.ProcessingInstructionStore],
	fixture.KindComment:               castTo[*dom.CommentStore],
	KindDocument:                      castTo[*dom.DocumentStore],
	fixture.KindDocumentType:          castTo[*dom.DocumentTypeStore],
	fixture.KindDocumentFragment:      castTo[*dom.DocumentFragmentStore],
}

func castTo[S dom.Store](n dom.AnyNode) (string, error) {
	c, err := dom.Cast[S](n)
	if err != nil {
		return "", err
	}
	return c.NodeName(), nil
}

func errorCode(err error) string {
	var domErr *dom.Error
	switch {
	case errors.As(err, &domErr):
		return string(domErr.Code)
	case errors.Is(err, errRootNotFound):
		return ErrCodeRootNotFound
	default:
		return err.Error()
	}
}

func checkExpect(exp *Expect, ev TraceEvent) []string {
	var msgs []string
	switch {
	case exp.Error != "" && ev.Error != exp.Error:
		msgs = append(msgs, fmt.Sprintf("expected error %q, got %q", exp.Error, ev.Error))
	case exp.Error == "" && ev.Error != "":
		msgs = append(msgs, fmt.Sprintf("unexpected error %q", ev.Error))
	}
	if exp.Found != nil && (ev.Found == nil || *ev.Found != *exp.Found) {
		msgs = append(msgs, fmt.Sprintf("expected found=%t, got %s", *exp.Found, formatBool(ev.Found)))
	}
	if exp.Count != nil && (ev.Count == nil || *ev.Count != *exp.Count) {
		msgs = append(msgs, fmt.Sprintf("expected count=%d, got %s", *exp.Count, formatInt(ev.Count)))
	}
	if exp.Name != "" && ev.Name != exp.Name {
		msgs = append(msgs, fmt.Sprintf("expected name %q, got %q", exp.Name, ev.Name))
	}
	return msgs
}

func formatBool(b *bool) string {
	if b == nil {
		return "nothing"
	}
	return fmt.Sprintf("%t", *b)
}

func formatInt(n *int) string {
	if n == nil {
		return "nothing"
	}
	return fmt.Sprintf("%d", *n)
}
