package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/l2hyunwoo/craby/ir"
	"github.com/l2hyunwoo/craby/syntax"
)

// AnalyzeSource parses, binds, and analyzes one spec source file. It returns
// the finalized schemas sorted by module name. A unit is atomic: any
// diagnostic, from the parser through resolution, means no schemas are
// produced for it. The error return is reserved for internal inconsistencies
// and spec interfaces that were never registered.
func AnalyzeSource(path, src string) ([]*ir.Schema, []Diagnostic, error) {
	file, perrs := syntax.ParseFile(path, src)
	scope, berrs := syntax.Bind(file)

	var diags []Diagnostic
	for _, e := range perrs {
		diags = append(diags, Diagnostic{Message: e.Message, Loc: e.Loc})
	}
	for _, e := range berrs {
		diags = append(diags, Diagnostic{Message: e.Message, Loc: e.Loc})
	}

	c := newCollector(scope)
	c.collectFile(file)
	diags = append(diags, c.diags...)
	if len(diags) > 0 {
		return nil, diags, nil
	}

	schemas, resolveDiags, err := assemble(c)
	if err != nil {
		return nil, nil, err
	}
	if len(resolveDiags) > 0 {
		return nil, resolveDiags, nil
	}
	return schemas, nil, nil
}

// assemble produces one schema per collected spec interface, resolving every
// method signature and accumulating the reachable type sets.
func assemble(c *collector) ([]*ir.Schema, []Diagnostic, error) {
	var diags []Diagnostic
	schemas := make([]*ir.Schema, 0, len(c.specs))

	for _, sym := range c.specOrder {
		methods := c.specs[sym]
		moduleName, ok := c.mods[sym]
		if !ok {
			return nil, nil, fmt.Errorf(
				"spec interface %q is declared but never registered", c.scope.NameOf(sym))
		}

		r := newResolver(c.decls)
		resolved := make([]ir.Method, 0, len(methods))
		for _, method := range methods {
			rm := ir.Method{Name: method.Name}
			for _, p := range method.Params {
				td, err := r.resolve(p.Type)
				if err != nil {
					if d, ok := asDiagnostic(err, c.declSpans[sym]); ok {
						diags = append(diags, d)
						continue
					}
					return nil, nil, err
				}
				r.collectReachable(td)
				rm.Params = append(rm.Params, ir.Param{Name: p.Name, Type: td})
			}

			ret, err := r.resolve(method.Return)
			if err != nil {
				if d, ok := asDiagnostic(err, c.declSpans[sym]); ok {
					diags = append(diags, d)
					continue
				}
				return nil, nil, err
			}
			r.collectReachable(ret)
			rm.Return = ret
			resolved = append(resolved, rm)
		}

		aliases, enums := r.reachableTypes()
		schema := &ir.Schema{
			ModuleName: moduleName,
			Methods:    resolved,
			AliasTypes: aliases,
			EnumTypes:  enums,
		}
		schema.SortTypes()
		schemas = append(schemas, schema)
	}

	if len(diags) > 0 {
		return nil, diags, nil
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].ModuleName < schemas[j].ModuleName
	})
	return schemas, nil, nil
}

// asDiagnostic converts resolution errors a user can fix into diagnostics.
// Anything else stays a hard error.
func asDiagnostic(err error, loc syntax.Span) (Diagnostic, bool) {
	var cycle *cycleError
	if errors.As(err, &cycle) {
		return Diagnostic{Message: cycle.Error(), Loc: loc}, true
	}
	if err.Error() == msgNullablePromise {
		return Diagnostic{Message: msgNullablePromise, Loc: loc}, true
	}
	return Diagnostic{}, false
}
