// Package inspect classifies every value of a native module into the four
// value sets and records what each classifier decided.
package inspect

import (
	"context"
	"errors"
	"fmt"

	"irkit/internal/native"
	"irkit/internal/trace"
	"irkit/internal/values"
)

// Outcome is the verdict of one set's checked classifier for one value.
type Outcome struct {
	Set    string `json:"set"`
	Member string `json:"member,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OK reports whether the value was accepted into the set.
func (o Outcome) OK() bool { return o.Member != "" }

// Row describes one value of a module.
type Row struct {
	Handle   string    `json:"handle"`
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type"`
	TypeKind string    `json:"type_kind"`
	Opcode   string    `json:"opcode,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome returns the verdict for the named set.
func (r Row) Outcome(set string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Set == set {
			return o, true
		}
	}
	return Outcome{}, false
}

// ModuleReport holds the rows of one module.
type ModuleReport struct {
	Source  string         `json:"source"`
	Context string         `json:"context"`
	Module  string         `json:"module"`
	Rows    []Row          `json:"rows"`
	Counts  map[string]int `json:"accepted"`
	Err     string         `json:"error,omitempty"`
}

// ErrInconsistent marks a disagreement between classification and the
// subset conversions. It indicates a bug in the values package, never a
// property of the input.
var ErrInconsistent = errors.New("inconsistent classification")

// Module classifies every value of m in walk order.
func Module(ctx context.Context, m *native.Module, source string) (ModuleReport, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeModule, "module:"+m.Name(), trace.CurrentSpan(ctx))

	rep := ModuleReport{
		Source:  source,
		Context: m.Context().ID().String(),
		Module:  m.Name(),
		Counts:  make(map[string]int, 4),
	}
	vals := m.Values()
	rep.Rows = make([]Row, 0, len(vals))
	for i, v := range vals {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				span.End("canceled")
				return rep, err
			}
		}
		row, err := classifyValue(v)
		if err != nil {
			trace.Failure(tr, trace.ScopeValue, "classify", err.Error(), span.ID())
			span.End("failed")
			return rep, fmt.Errorf("module %s: %w", m.Name(), err)
		}
		for _, o := range row.Outcomes {
			if o.OK() {
				rep.Counts[o.Set]++
			}
		}
		trace.Point(tr, trace.ScopeValue, row.Handle, summarize(row), span.ID())
		rep.Rows = append(rep.Rows, row)
	}
	span.WithExtra("values", fmt.Sprint(len(rep.Rows))).End("")
	return rep, nil
}

func summarize(r Row) string {
	s := r.TypeKind
	for _, o := range r.Outcomes {
		if o.OK() {
			s += " " + o.Member
		} else {
			s += " -"
		}
	}
	return s
}

// classifyValue runs the four checked classifiers over v and cross-checks
// their results through the subset conversions.
func classifyValue(v native.ValueRef) (Row, error) {
	row := Row{
		Handle:   v.String(),
		Name:     v.Name(),
		Type:     v.Type().String(),
		TypeKind: v.Type().TypeKind().String(),
		Outcomes: make([]Outcome, 0, 4),
	}

	anyV, anyErr := values.TryNewAnyValueEnum(v)
	basic, basicErr := values.TryNewBasicValueEnum(v)
	agg, aggErr := values.TryNewAggregateValueEnum(v)
	bmd, bmdErr := values.TryNewBasicMetadataValueEnum(v)

	row.Outcomes = append(row.Outcomes,
		outcome("AnyValueEnum", anyV.Kind(), anyErr),
		outcome("BasicValueEnum", basic.Kind(), basicErr),
		outcome("AggregateValueEnum", agg.Kind(), aggErr),
		outcome("BasicMetadataValueEnum", bmd.Kind(), bmdErr),
	)

	if basicErr == nil {
		if inst, ok := basic.AsInstruction(); ok {
			row.Opcode = inst.Opcode().String()
		}
		if anyErr != nil || basic.AsAnyValueEnum() != anyV {
			return row, fmt.Errorf("%w: %s basic→any", ErrInconsistent, row.Handle)
		}
		if bmdErr != nil || basic.AsBasicMetadataValueEnum() != bmd {
			return row, fmt.Errorf("%w: %s basic→basic-metadata", ErrInconsistent, row.Handle)
		}
	}
	if aggErr == nil {
		if basicErr != nil || agg.AsBasicValueEnum() != basic {
			return row, fmt.Errorf("%w: %s aggregate→basic", ErrInconsistent, row.Handle)
		}
	}
	if anyErr == nil {
		if _, ok := anyV.ToBasicValueEnum(); ok != (basicErr == nil) {
			return row, fmt.Errorf("%w: %s any→basic", ErrInconsistent, row.Handle)
		}
	}
	return row, nil
}

func outcome(set string, k values.Kind, err error) Outcome {
	if err != nil {
		var cerr *values.ClassifyError
		if errors.As(err, &cerr) {
			return Outcome{Set: set, Reason: cerr.Reason}
		}
		return Outcome{Set: set, Reason: err.Error()}
	}
	return Outcome{Set: set, Member: k.WrapperName()}
}
