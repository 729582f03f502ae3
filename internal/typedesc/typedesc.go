// Package typedesc defines the resolved type model the generator consumes.
// This is the Go shape of what the semantic resolver reports for a
// declaration: a primitive-category flag set plus the structural facets a
// codec needs (members, elements, properties, index signatures).
package typedesc

// Flags is the resolver's primitive-category bitset for a type.
type Flags uint32

const (
	// FlagString marks the string primitive.
	FlagString Flags = 1 << iota
	// FlagNumber marks the number primitive.
	FlagNumber
	// FlagBoolean marks the boolean primitive.
	FlagBoolean
	// FlagNull marks the null type.
	FlagNull
	// FlagUndefined marks the undefined type.
	FlagUndefined
	// FlagVoid marks the void type.
	FlagVoid
	// FlagAny marks the any top type.
	FlagAny
	// FlagUnknown marks the unknown top type.
	FlagUnknown
	// FlagNonPrimitive marks the bare `object` keyword type.
	FlagNonPrimitive
	// FlagStringLiteral marks a string literal type. Literal carries the value.
	FlagStringLiteral
	// FlagNumberLiteral marks a number literal type. Literal carries the value.
	FlagNumberLiteral
	// FlagBooleanLiteral marks a boolean literal type. Literal carries the value.
	FlagBooleanLiteral
	// FlagUnion marks a union; Members holds the alternatives.
	FlagUnion
	// FlagIntersection marks an intersection; Members holds the parts.
	FlagIntersection
	// FlagStructured marks an object type with an own member list
	// (properties, possibly empty).
	FlagStructured
)

// FlagsLiteral covers every literal category.
const FlagsLiteral = FlagStringLiteral | FlagNumberLiteral | FlagBooleanLiteral

// FlagsPrimitive covers the categories that emit a bare primitive codec.
// void, any and unknown classify on their own, later in the check order.
const FlagsPrimitive = FlagString | FlagNumber | FlagBoolean | FlagNull | FlagUndefined

// Type is one node of the resolved type graph.
type Type struct {
	// Flags is the category bitset.
	Flags Flags `json:"flags"`

	// Symbol is the type's own declared name, when it has one.
	Symbol string `json:"symbol,omitempty"`

	// Alias is the alias symbol name the type was reached through.
	Alias string `json:"alias,omitempty"`

	// AliasArgs holds the alias's type arguments.
	// A two-argument alias named Record is the map-object form.
	AliasArgs []*Type `json:"aliasArgs,omitempty"`

	// Literal holds the literal value. Only set when a literal flag is set.
	Literal *Literal `json:"literal,omitempty"`

	// Members holds union or intersection members in source order.
	// Only set when FlagUnion or FlagIntersection is set.
	Members []*Type `json:"members,omitempty"`

	// Elements holds tuple element types. Non-nil means the type is a
	// tuple, even with zero elements.
	Elements []*Type `json:"elements,omitempty"`

	// Rest is true when the tuple ends in a variadic element. The variadic
	// tail itself is not represented; emission truncates it.
	Rest bool `json:"rest,omitempty"`

	// Element holds the array element type. Only set for arrays.
	Element *Type `json:"element,omitempty"`

	// Properties holds the own members of a structured type.
	// Only meaningful when FlagStructured is set.
	Properties []Property `json:"properties,omitempty"`

	// StringIndex holds the value type of a [key: string] index signature.
	StringIndex *Type `json:"stringIndex,omitempty"`

	// NumberIndex holds the value type of a [key: number] index signature.
	NumberIndex *Type `json:"numberIndex,omitempty"`

	// Callable is true when the type has call signatures.
	Callable bool `json:"callable,omitempty"`
}

// Literal holds a literal type's value. The owning type's literal flag
// selects which field is meaningful.
type Literal struct {
	Str  string  `json:"str,omitempty"`
	Num  float64 `json:"num,omitempty"`
	Bool bool    `json:"bool,omitempty"`
}

// Property is a named member of a structured type.
type Property struct {
	// Name is the property name as declared.
	Name string `json:"name"`

	// Optional is true when the declaration site carries the optionality
	// marker. Rendering folds undefined into the property's codec.
	Optional bool `json:"optional,omitempty"`

	// Type is the property's resolved type, without implied undefined.
	Type *Type `json:"type"`

	// Declared carries the syntax-level view of the property's annotation
	// when it parses as a simple reference or a union of simple terms.
	// Used for reference preservation; nil otherwise.
	Declared *Annotation `json:"declared,omitempty"`
}

// Annotation is the parsed, syntax-level view of a type annotation node.
// Exactly one of Ref and Union is set.
type Annotation struct {
	// Ref is a single named reference.
	Ref string `json:"ref,omitempty"`

	// Union lists the terms of a union annotation.
	Union []AnnotationTerm `json:"union,omitempty"`
}

// AnnotationTerm is one alternative of a union annotation: a named
// reference or a primitive keyword.
type AnnotationTerm struct {
	// Ref is a named reference, when the term is one.
	Ref string `json:"ref,omitempty"`

	// Prim is a primitive keyword: string, number, boolean, null or
	// undefined. Empty when Ref is set.
	Prim string `json:"prim,omitempty"`
}
