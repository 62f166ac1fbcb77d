package ir

// Equal reports whether two descriptors are structurally identical, comparing
// the full shape including nested members. Two independently resolved
// occurrences of the same named object type compare equal, which is what lets
// reachability sets collapse them into one entry.
func Equal(a, b TypeDescriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *PrimitiveDescriptor:
		return true // kinds already matched

	case *ArrayDescriptor:
		return Equal(x.Element, b.(*ArrayDescriptor).Element)

	case *PromiseDescriptor:
		return Equal(x.Resolved, b.(*PromiseDescriptor).Resolved)

	case *NullableDescriptor:
		return Equal(x.Base, b.(*NullableDescriptor).Base)

	case *ObjectDescriptor:
		y := b.(*ObjectDescriptor)
		if x.Name != y.Name || len(x.Props) != len(y.Props) {
			return false
		}
		for i := range x.Props {
			if x.Props[i].Name != y.Props[i].Name {
				return false
			}
			if !Equal(x.Props[i].Type, y.Props[i].Type) {
				return false
			}
		}
		return true

	case *EnumDescriptor:
		y := b.(*EnumDescriptor)
		if x.Name != y.Name || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i] != y.Members[i] {
				return false
			}
		}
		return true

	case *RefDescriptor:
		y := b.(*RefDescriptor)
		return x.Symbol == y.Symbol && x.Name == y.Name

	default:
		return false
	}
}

// ContainsRef reports whether any RefDescriptor remains anywhere in the tree.
// A fully resolved descriptor tree returns false.
func ContainsRef(td TypeDescriptor) bool {
	switch d := td.(type) {
	case *RefDescriptor:
		return true
	case *ArrayDescriptor:
		return ContainsRef(d.Element)
	case *PromiseDescriptor:
		return ContainsRef(d.Resolved)
	case *NullableDescriptor:
		return ContainsRef(d.Base)
	case *ObjectDescriptor:
		for _, p := range d.Props {
			if ContainsRef(p.Type) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the descriptor tree.
func Clone(td TypeDescriptor) TypeDescriptor {
	switch d := td.(type) {
	case *PrimitiveDescriptor:
		return &PrimitiveDescriptor{kind: d.kind}
	case *ArrayDescriptor:
		return &ArrayDescriptor{Element: Clone(d.Element)}
	case *PromiseDescriptor:
		return &PromiseDescriptor{Resolved: Clone(d.Resolved)}
	case *NullableDescriptor:
		return &NullableDescriptor{Base: Clone(d.Base)}
	case *ObjectDescriptor:
		props := make([]Prop, len(d.Props))
		for i, p := range d.Props {
			props[i] = Prop{Name: p.Name, Type: Clone(p.Type)}
		}
		return &ObjectDescriptor{Name: d.Name, Props: props}
	case *EnumDescriptor:
		members := make([]EnumMember, len(d.Members))
		copy(members, d.Members)
		return &EnumDescriptor{Name: d.Name, Members: members}
	case *RefDescriptor:
		return &RefDescriptor{Symbol: d.Symbol, Name: d.Name}
	default:
		return td
	}
}
