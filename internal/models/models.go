package models

import "fmt"

// Kind identifies which JSON type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a parsed JSON node. Only the payload field matching Kind is set.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  float64
	Raw     string // original number token, empty when unknown
	Str     string
	Items   []Value
	Members []Member
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Document is what the parser hands to the generator.
// A top-level object or scalar is wrapped into a one-element Values list;
// a top-level array contributes its elements and sets RootIsArray.
type Document struct {
	Values      []Value
	RootIsArray bool
}

func Null() Value { return Value{Kind: KindNull} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// NumberText keeps the literal token text next to the decoded number.
func NumberText(f float64, raw string) Value {
	return Value{Kind: KindNumber, Number: f, Raw: raw}
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Array never returns a nil Items slice so empty arrays stay distinguishable.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindArray, Items: items}
}

func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{Kind: KindObject, Members: members}
}

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.Kind == KindArray || v.Kind == KindObject
}

// NewDocument wraps a root value following the parser contract.
func NewDocument(root Value) Document {
	if root.Kind == KindArray {
		return Document{Values: root.Items, RootIsArray: true}
	}
	return Document{Values: []Value{root}}
}
