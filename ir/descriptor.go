// Package ir defines the intermediate representation for native module type
// descriptors. These types are source-language-agnostic representations of the
// closed set of shapes a module spec may use, which generators transform into
// target language source code.
package ir

// Symbol is an opaque identity assigned by the binder to every declared name.
// Equality is identity-based, not name-based: two declarations may share a
// textual name without sharing a Symbol.
type Symbol uint32

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindVoid DescriptorKind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray    // Ordered collection (T[])
	KindObject   // Named record with ordered properties
	KindEnum     // Enumeration with string or numeric members
	KindPromise  // Asynchronous result
	KindNullable // Optional wrapper (T | null)
	KindRef      // Unresolved reference to a declared type; eliminated by the resolver
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindVoid:
		return "Void"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindEnum:
		return "Enum"
	case KindPromise:
		return "Promise"
	case KindNullable:
		return "Nullable"
	case KindRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase provides the sealed marker for descriptor types.
type exprBase struct{}

func (exprBase) sealed() {}

// PrimitiveDescriptor represents one of the leaf types: Void, Boolean, Number,
// or String.
type PrimitiveDescriptor struct {
	exprBase
	kind DescriptorKind
}

// Kind returns the primitive's descriptor kind.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return d.kind }

// Void returns the descriptor for the unit type.
func Void() *PrimitiveDescriptor { return &PrimitiveDescriptor{kind: KindVoid} }

// Boolean returns the descriptor for bool.
func Boolean() *PrimitiveDescriptor { return &PrimitiveDescriptor{kind: KindBoolean} }

// Number returns the descriptor for the 64-bit float numeric type.
func Number() *PrimitiveDescriptor { return &PrimitiveDescriptor{kind: KindNumber} }

// String returns the descriptor for the UTF-8 string type.
func String() *PrimitiveDescriptor { return &PrimitiveDescriptor{kind: KindString} }
