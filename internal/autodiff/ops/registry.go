package ops

import (
	"fmt"
	"sort"
)

// Registry maps operation kinds to their implementations.
type Registry struct {
	ops map[Kind]Operation
}

// NewRegistry creates a registry holding the full operation catalog.
func NewRegistry() *Registry {
	r := &Registry{
		ops: make(map[Kind]Operation),
	}

	r.Register(IdentityOp{})
	r.Register(NegativeOp{})
	r.Register(LogOp{})
	r.Register(SigmoidOp{})
	r.Register(ReLUOp{})
	r.Register(ExpOp{})
	r.Register(TanhOp{})
	r.Register(SqrtOp{})
	r.Register(TransposeOp{})
	r.Register(AddOp{})
	r.Register(SubOp{})
	r.Register(MulOp{})
	r.Register(DivOp{})
	r.Register(PowOp{})
	r.Register(MatMulOp{})

	return r
}

// Register adds or replaces the implementation for op.Kind().
func (r *Registry) Register(op Operation) {
	r.ops[op.Kind()] = op
}

// Get returns the operation for a kind.
func (r *Registry) Get(kind Kind) (Operation, bool) {
	op, ok := r.ops[kind]
	return op, ok
}

// Lookup returns the operation for a kind or an error if it is not registered.
func (r *Registry) Lookup(kind Kind) (Operation, error) {
	op, ok := r.ops[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported operation: %s", kind)
	}
	return op, nil
}

// Kinds returns all registered kinds in ascending order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.ops))
	for k := range r.ops {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

var catalog = NewRegistry()

// ForKind returns the catalog operation for kind.
// Panics if kind is not part of the catalog.
func ForKind(kind Kind) Operation {
	op, ok := catalog.Get(kind)
	if !ok {
		panic(fmt.Sprintf("ops: unknown kind %d", kind))
	}
	return op
}
