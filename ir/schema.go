package ir

import "sort"

// Param is a single method parameter.
type Param struct {
	// Name is the parameter name from the spec declaration.
	Name string

	// Type is the parameter's type descriptor.
	Type TypeDescriptor
}

// Method is a single module method signature.
type Method struct {
	// Name is the method name as declared in the spec.
	Name string

	// Params contains the parameters in declaration order.
	Params []Param

	// Return is the method's return type descriptor.
	Return TypeDescriptor
}

// Schema is the finalized description of one registered native module. It is
// immutable after assembly: generators read it and never mutate it.
type Schema struct {
	// ModuleName is the registered module name, unique across the project.
	ModuleName string

	// Methods contains the module's methods with fully resolved types.
	Methods []Method

	// AliasTypes is the deduplicated set of object types transitively
	// reachable from any method signature, sorted by name.
	AliasTypes []*ObjectDescriptor

	// EnumTypes is the deduplicated set of enum types transitively reachable
	// from any method signature, sorted by name.
	EnumTypes []*EnumDescriptor
}

// SortTypes sorts the alias and enum sets by name for deterministic output.
func (s *Schema) SortTypes() {
	sort.Slice(s.AliasTypes, func(i, j int) bool {
		return s.AliasTypes[i].Name < s.AliasTypes[j].Name
	})
	sort.Slice(s.EnumTypes, func(i, j int) bool {
		return s.EnumTypes[i].Name < s.EnumTypes[j].Name
	})
}

// Validate checks the schema for structural issues a generator relies on:
// no Ref nodes anywhere, no duplicate alias or enum names, no nullable
// promises and no nested promises. Returns all problems found.
func (s *Schema) Validate() []error {
	var errs []error

	aliasNames := make(map[string]bool)
	for _, a := range s.AliasTypes {
		if aliasNames[a.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_alias",
				Message: "duplicate alias type name: " + a.Name,
			})
		}
		aliasNames[a.Name] = true
	}

	enumNames := make(map[string]bool)
	for _, e := range s.EnumTypes {
		if enumNames[e.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_enum",
				Message: "duplicate enum type name: " + e.Name,
			})
		}
		enumNames[e.Name] = true
	}

	for _, m := range s.Methods {
		for _, p := range m.Params {
			errs = append(errs, validateResolved(p.Type, "method "+m.Name+" parameter "+p.Name)...)
		}
		errs = append(errs, validateResolved(m.Return, "method "+m.Name+" return type")...)
	}

	return errs
}

func validateResolved(td TypeDescriptor, context string) []error {
	if td == nil {
		return []error{&ValidationError{Code: "missing_type", Message: context + " has no type"}}
	}

	var errs []error
	if ContainsRef(td) {
		errs = append(errs, &ValidationError{
			Code:    "unresolved_reference",
			Message: context + " contains an unresolved type reference",
		})
	}

	var walk func(t TypeDescriptor)
	walk = func(t TypeDescriptor) {
		switch d := t.(type) {
		case *ArrayDescriptor:
			walk(d.Element)
		case *ObjectDescriptor:
			for _, p := range d.Props {
				walk(p.Type)
			}
		case *NullableDescriptor:
			if d.Base.Kind() == KindPromise {
				errs = append(errs, &ValidationError{
					Code:    "nullable_promise",
					Message: context + ": promise type cannot be nullable",
				})
			}
			walk(d.Base)
		case *PromiseDescriptor:
			if d.Resolved.Kind() == KindPromise {
				errs = append(errs, &ValidationError{
					Code:    "nested_promise",
					Message: context + ": promise type cannot resolve to another promise",
				})
			}
			walk(d.Resolved)
		}
	}
	walk(td)

	return errs
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
