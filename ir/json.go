package ir

import "encoding/json"

// JSON serialization support for descriptors and schemas. Every descriptor
// includes a "kind" field for type discrimination, which the schema dump and
// the show command rely on.

// MarshalJSON implements json.Marshaler for PrimitiveDescriptor.
func (d *PrimitiveDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
	}{
		Kind: d.kind.String(),
	})
}

// MarshalJSON implements json.Marshaler for ArrayDescriptor.
func (d *ArrayDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"elementType"`
	}{
		Kind:    "Array",
		Element: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for PromiseDescriptor.
func (d *PromiseDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string         `json:"kind"`
		Resolved TypeDescriptor `json:"resolvedType"`
	}{
		Kind:     "Promise",
		Resolved: d.Resolved,
	})
}

// MarshalJSON implements json.Marshaler for NullableDescriptor.
func (d *NullableDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string         `json:"kind"`
		Base TypeDescriptor `json:"baseType"`
	}{
		Kind: "Nullable",
		Base: d.Base,
	})
}

// MarshalJSON implements json.Marshaler for ObjectDescriptor.
func (d *ObjectDescriptor) MarshalJSON() ([]byte, error) {
	props := make([]jsonProp, len(d.Props))
	for i, p := range d.Props {
		props[i] = jsonProp{Name: p.Name, Type: p.Type}
	}
	return json.Marshal(&struct {
		Kind  string     `json:"kind"`
		Name  string     `json:"name"`
		Props []jsonProp `json:"properties"`
	}{
		Kind:  "Object",
		Name:  d.Name,
		Props: props,
	})
}

type jsonProp struct {
	Name string         `json:"name"`
	Type TypeDescriptor `json:"typeAnnotation"`
}

// MarshalJSON implements json.Marshaler for EnumDescriptor.
func (d *EnumDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string       `json:"kind"`
		Name       string       `json:"name"`
		MemberKind string       `json:"memberType"`
		Members    []EnumMember `json:"members"`
	}{
		Kind:       "Enum",
		Name:       d.Name,
		MemberKind: d.MemberKind().String(),
		Members:    d.Members,
	})
}

// MarshalJSON implements json.Marshaler for EnumMember.
func (m EnumMember) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	}{
		Name:  m.Name,
		Value: m.Value,
	})
}

// MarshalJSON implements json.Marshaler for RefDescriptor. Refs never appear
// in finalized schemas but serializing them keeps debug dumps usable.
func (d *RefDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Symbol uint32 `json:"symbol"`
		Name   string `json:"name"`
	}{
		Kind:   "Ref",
		Symbol: uint32(d.Symbol),
		Name:   d.Name,
	})
}

// MarshalJSON implements json.Marshaler for Method.
func (m Method) MarshalJSON() ([]byte, error) {
	params := make([]jsonParam, len(m.Params))
	for i, p := range m.Params {
		params[i] = jsonParam{Name: p.Name, Type: p.Type}
	}
	return json.Marshal(&struct {
		Name   string         `json:"name"`
		Params []jsonParam    `json:"params"`
		Return TypeDescriptor `json:"returnType"`
	}{
		Name:   m.Name,
		Params: params,
		Return: m.Return,
	})
}

type jsonParam struct {
	Name string         `json:"name"`
	Type TypeDescriptor `json:"typeAnnotation"`
}

// MarshalJSON implements json.Marshaler for Schema.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ModuleName string              `json:"moduleName"`
		Methods    []Method            `json:"methods"`
		AliasTypes []*ObjectDescriptor `json:"aliasTypes"`
		EnumTypes  []*EnumDescriptor   `json:"enumTypes"`
	}{
		ModuleName: s.ModuleName,
		Methods:    s.Methods,
		AliasTypes: s.AliasTypes,
		EnumTypes:  s.EnumTypes,
	})
}
