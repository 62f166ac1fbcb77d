package ir

// EnumDescriptor represents an enumeration with homogeneously typed members.
type EnumDescriptor struct {
	exprBase

	// Name is the declared enum name.
	Name string

	// Members contains all variants in declaration order.
	Members []EnumMember
}

// Kind returns KindEnum.
func (d *EnumDescriptor) Kind() DescriptorKind { return KindEnum }

// Enum returns an EnumDescriptor with the given name and members.
func Enum(name string, members ...EnumMember) *EnumDescriptor {
	return &EnumDescriptor{Name: name, Members: members}
}

// MemberKind returns KindString or KindNumber according to the members' raw
// values. The collector guarantees homogeneity, so the first member decides.
// An empty enum reports KindNumber.
func (d *EnumDescriptor) MemberKind() DescriptorKind {
	if len(d.Members) > 0 {
		if _, ok := d.Members[0].Value.(string); ok {
			return KindString
		}
	}
	return KindNumber
}

// EnumMember represents a single enum variant.
type EnumMember struct {
	// Name is the member name.
	Name string

	// Value is the raw member value: string for string enums, int64 for
	// numeric enums. Generators can rely on type assertions to these two
	// concrete types.
	Value any
}

// StringMember returns an EnumMember with a string raw value.
func StringMember(name, value string) EnumMember {
	return EnumMember{Name: name, Value: value}
}

// NumberMember returns an EnumMember with a numeric raw value.
func NumberMember(name string, value int64) EnumMember {
	return EnumMember{Name: name, Value: value}
}
