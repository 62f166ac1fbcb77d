package ir

// ArrayDescriptor represents an ordered collection of a single element type.
type ArrayDescriptor struct {
	exprBase

	// Element is the array element type.
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

// Array returns an ArrayDescriptor for the given element type.
func Array(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element}
}

// PromiseDescriptor represents an asynchronous result.
//
// A Promise may not itself be nullable and may not be nested inside another
// Promise; the collector rejects both shapes before they reach the IR.
type PromiseDescriptor struct {
	exprBase

	// Resolved is the type the promise resolves to.
	Resolved TypeDescriptor
}

// Kind returns KindPromise.
func (d *PromiseDescriptor) Kind() DescriptorKind { return KindPromise }

// Promise returns a PromiseDescriptor for the given resolved type.
func Promise(resolved TypeDescriptor) *PromiseDescriptor {
	return &PromiseDescriptor{Resolved: resolved}
}

// NullableDescriptor represents an optional value (T | null).
type NullableDescriptor struct {
	exprBase

	// Base is the wrapped type. Never itself a NullableDescriptor; the
	// Nullable constructor collapses double wrapping.
	Base TypeDescriptor
}

// Kind returns KindNullable.
func (d *NullableDescriptor) Kind() DescriptorKind { return KindNullable }

// Nullable returns a NullableDescriptor for the given base type.
// Wrapping an already-nullable type returns it unchanged, so a doubly-optional
// bridge type can never be constructed.
func Nullable(base TypeDescriptor) TypeDescriptor {
	if base.Kind() == KindNullable {
		return base
	}
	return &NullableDescriptor{Base: base}
}

// RefDescriptor is a transient reference to a declared type, identified by the
// binder-assigned symbol. The resolver replaces every RefDescriptor with the
// referenced declaration's descriptor; a finalized Schema contains none.
type RefDescriptor struct {
	exprBase

	// Symbol is the referenced declaration's identity.
	Symbol Symbol

	// Name is the textual name at the reference site, kept for error messages.
	Name string
}

// Kind returns KindRef.
func (d *RefDescriptor) Kind() DescriptorKind { return KindRef }

// Ref returns a RefDescriptor for a symbolic type reference.
func Ref(sym Symbol, name string) *RefDescriptor {
	return &RefDescriptor{Symbol: sym, Name: name}
}
