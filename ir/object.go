package ir

// ObjectDescriptor represents a named record type with ordered properties.
//
// Properties keep their declaration order for code generation; deduplication
// in reachability sets is keyed by Name.
type ObjectDescriptor struct {
	exprBase

	// Name is the declared type name.
	Name string

	// Props contains the record's properties in declaration order.
	Props []Prop
}

// Kind returns KindObject.
func (d *ObjectDescriptor) Kind() DescriptorKind { return KindObject }

// Object returns an ObjectDescriptor with the given name and properties.
func Object(name string, props ...Prop) *ObjectDescriptor {
	return &ObjectDescriptor{Name: name, Props: props}
}

// Prop is a single named property of an object type.
type Prop struct {
	// Name is the property name.
	Name string

	// Type is the property's type descriptor.
	Type TypeDescriptor
}
