package typedesc

import (
	"github.com/cockroachdb/errors"
)

// Kind is the single classification assigned to a descriptor.
type Kind string

const (
	KindLiteral       Kind = "literal"
	KindPrimitive     Kind = "primitive"     // string, number, boolean, null, undefined
	KindUnknownObject Kind = "unknownObject" // the bare `object` keyword
	KindUnion         Kind = "union"
	KindIntersection  Kind = "intersection"
	KindTuple         Kind = "tuple"
	KindArray         Kind = "array"
	KindRecord        Kind = "record" // Record<K, V> by alias
	KindStringIndexed Kind = "stringIndexed"
	KindNumberIndexed Kind = "numberIndexed"
	KindFunction      Kind = "function"
	KindObject        Kind = "object" // structured, property-listed
	KindVoid          Kind = "void"
	KindTop           Kind = "top" // any or unknown
)

// IsLiteral reports whether t is a string, number or boolean literal type.
func IsLiteral(t *Type) bool { return t.Flags&FlagsLiteral != 0 }

// IsPrimitive reports whether t is one of the bare primitive categories.
func IsPrimitive(t *Type) bool { return t.Flags&FlagsPrimitive != 0 }

// IsUnknownObject reports whether t is the generic `object` keyword type.
func IsUnknownObject(t *Type) bool { return t.Flags&FlagNonPrimitive != 0 }

// IsUnion reports whether t is a union.
func IsUnion(t *Type) bool { return t.Flags&FlagUnion != 0 }

// IsIntersection reports whether t is an intersection.
func IsIntersection(t *Type) bool { return t.Flags&FlagIntersection != 0 }

// IsTuple reports whether t is a tuple. A non-nil element list is the
// marker, so zero-length tuples still classify.
func IsTuple(t *Type) bool { return t.Elements != nil }

// IsArray reports whether t is an array.
func IsArray(t *Type) bool { return t.Element != nil }

// IsRecord reports whether t was reached through a two-argument alias
// named Record.
func IsRecord(t *Type) bool { return t.Alias == "Record" && len(t.AliasArgs) == 2 }

// IsStringIndexed reports whether t carries a string index signature.
func IsStringIndexed(t *Type) bool { return t.StringIndex != nil }

// IsNumberIndexed reports whether t carries a number index signature.
func IsNumberIndexed(t *Type) bool { return t.NumberIndex != nil }

// IsFunction reports whether t has call signatures.
func IsFunction(t *Type) bool { return t.Callable }

// IsObject reports whether t is a structured type with an own member list.
func IsObject(t *Type) bool { return t.Flags&FlagStructured != 0 }

// IsVoid reports whether t is void.
func IsVoid(t *Type) bool { return t.Flags&FlagVoid != 0 }

// IsTop reports whether t is any or unknown.
func IsTop(t *Type) bool { return t.Flags&(FlagAny|FlagUnknown) != 0 }

// Classify resolves t to exactly one kind. The check order is load-bearing:
// categories overlap (every array is object-like, a Record alias can expose
// a property list, an indexed interface can still declare properties), so
// earlier checks shadow later ones. First match wins.
func Classify(t *Type) (Kind, error) {
	switch {
	case IsLiteral(t):
		return KindLiteral, nil
	case IsPrimitive(t):
		return KindPrimitive, nil
	case IsUnknownObject(t):
		return KindUnknownObject, nil
	case IsUnion(t):
		return KindUnion, nil
	case IsIntersection(t):
		return KindIntersection, nil
	case IsTuple(t):
		return KindTuple, nil
	case IsArray(t):
		return KindArray, nil
	case IsRecord(t):
		return KindRecord, nil
	case IsStringIndexed(t):
		return KindStringIndexed, nil
	case IsNumberIndexed(t):
		return KindNumberIndexed, nil
	case IsFunction(t):
		return KindFunction, nil
	case IsObject(t):
		return KindObject, nil
	case IsVoid(t):
		return KindVoid, nil
	case IsTop(t):
		return KindTop, nil
	}
	return "", errors.Newf("unclassifiable type (flags %#x, symbol %q)", uint32(t.Flags), t.Symbol)
}
