package analyzer

import (
	"fmt"

	"github.com/l2hyunwoo/craby/ir"
	"github.com/l2hyunwoo/craby/syntax"
)

// cycleError marks a reference cycle between declared types. Cycles are a
// user mistake, so the caller reports them as a diagnostic instead of
// failing hard.
type cycleError struct {
	name string
}

func (e *cycleError) Error() string {
	return "Cyclic type reference: " + e.name
}

// resolver substitutes every Ref node with a clone of the referenced
// declaration, transitively, and gathers the reachable object and enum types
// along the way.
type resolver struct {
	decls map[syntax.SymbolID]ir.TypeDescriptor

	// resolving tracks symbols currently being substituted so a reference
	// cycle is caught instead of recursing forever.
	resolving map[syntax.SymbolID]bool

	aliases map[string]*ir.ObjectDescriptor
	enums   map[string]*ir.EnumDescriptor
}

func newResolver(decls map[syntax.SymbolID]ir.TypeDescriptor) *resolver {
	return &resolver{
		decls:     decls,
		resolving: make(map[syntax.SymbolID]bool),
		aliases:   make(map[string]*ir.ObjectDescriptor),
		enums:     make(map[string]*ir.EnumDescriptor),
	}
}

// resolve returns a fully substituted copy of the descriptor. A missing
// declaration is an internal inconsistency: the collector only emits Ref
// nodes for names it saw declared.
func (r *resolver) resolve(td ir.TypeDescriptor) (ir.TypeDescriptor, error) {
	switch d := td.(type) {
	case *ir.RefDescriptor:
		sym := syntax.SymbolID(d.Symbol)
		target, ok := r.decls[sym]
		if !ok {
			return nil, fmt.Errorf("unknown type reference %q (symbol %d)", d.Name, d.Symbol)
		}
		if r.resolving[sym] {
			return nil, &cycleError{name: d.Name}
		}
		r.resolving[sym] = true
		resolved, err := r.resolve(ir.Clone(target))
		delete(r.resolving, sym)
		if err != nil {
			return nil, err
		}
		return resolved, nil

	case *ir.ArrayDescriptor:
		elem, err := r.resolve(d.Element)
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil

	case *ir.PromiseDescriptor:
		resolved, err := r.resolve(d.Resolved)
		if err != nil {
			return nil, err
		}
		return ir.Promise(resolved), nil

	case *ir.NullableDescriptor:
		base, err := r.resolve(d.Base)
		if err != nil {
			return nil, err
		}
		if base.Kind() == ir.KindPromise {
			return nil, fmt.Errorf("%s", msgNullablePromise)
		}
		return ir.Nullable(base), nil

	case *ir.ObjectDescriptor:
		props := make([]ir.Prop, len(d.Props))
		for i, p := range d.Props {
			resolved, err := r.resolve(p.Type)
			if err != nil {
				return nil, err
			}
			props[i] = ir.Prop{Name: p.Name, Type: resolved}
		}
		return ir.Object(d.Name, props...), nil

	default:
		return td, nil
	}
}

// collectReachable inserts every object and enum type found in a resolved
// descriptor into the reachability sets. Enums are leaves; objects recurse
// into their properties. Duplicate names keep the first occurrence.
func (r *resolver) collectReachable(td ir.TypeDescriptor) {
	switch d := td.(type) {
	case *ir.ObjectDescriptor:
		if _, seen := r.aliases[d.Name]; !seen {
			r.aliases[d.Name] = d
		}
		for _, p := range d.Props {
			r.collectReachable(p.Type)
		}
	case *ir.EnumDescriptor:
		if _, seen := r.enums[d.Name]; !seen {
			r.enums[d.Name] = d
		}
	case *ir.ArrayDescriptor:
		r.collectReachable(d.Element)
	case *ir.PromiseDescriptor:
		r.collectReachable(d.Resolved)
	case *ir.NullableDescriptor:
		r.collectReachable(d.Base)
	}
}

func (r *resolver) reachableTypes() ([]*ir.ObjectDescriptor, []*ir.EnumDescriptor) {
	aliases := make([]*ir.ObjectDescriptor, 0, len(r.aliases))
	for _, o := range r.aliases {
		aliases = append(aliases, o)
	}
	enums := make([]*ir.EnumDescriptor, 0, len(r.enums))
	for _, e := range r.enums {
		enums = append(enums, e)
	}
	return aliases, enums
}
