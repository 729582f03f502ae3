package codegen

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/iotsgen/iotsgen/internal/diagnostic"
	"github.com/iotsgen/iotsgen/internal/newtype"
	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/typedesc"
)

// maxRenderDepth caps type recursion. A resolved graph this deep is
// either adversarial or self-referential through structure; both end
// the declaration with an error marker instead of the process stack.
const maxRenderDepth = 200

// errTooDeep marks a declaration abandoned by the depth guard.
var errTooDeep = errors.New("type nesting too deep")

// renderCtx carries the state one declaration renders under.
type renderCtx struct {
	// available holds the names a node may emit as a bare reference.
	// The declaration being rendered is excluded, so self-reference
	// falls through to the structural form instead of an identifier
	// that the output would define in terms of itself.
	available map[string]bool

	// variantToBase rewrites collapsed numbered-variant names to the
	// base newtype that absorbed them.
	variantToBase map[string]string

	decl  string
	file  string
	diags *diagnostic.Collector
}

// refTarget maps name through the variant collapse and reports whether
// the result may be emitted as a reference.
func (c *renderCtx) refTarget(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if base, ok := c.variantToBase[name]; ok {
		name = base
	}
	if c.available[name] {
		return name, true
	}
	return "", false
}

// renderDeclaration renders one declaration into its output binding.
func renderDeclaration(d *scope.Declaration, ctx *renderCtx) (string, error) {
	if d.Type == nil {
		return "", errors.New("declaration carries no resolved type")
	}
	expr, err := renderType(d.Type, ctx, 0)
	if err != nil {
		return "", err
	}
	return "const " + d.Name + " = " + expr, nil
}

// renderNewtype emits the three-line nominal scaffold for a branded
// primitive alias.
func renderNewtype(name string, kind newtype.PrimKind) string {
	e := NewEmitter()
	e.Line("export interface %s extends Newtype<{ readonly %s: unique symbol }, %s> {}", name, name, kind)
	e.Line("export const %s = fromNewtype<%s>(t.%s)", name, name, kind)
	e.Line("export const iso%s = iso<%s>()", name, name)
	return strings.TrimSuffix(e.String(), "\n")
}

// renderType translates one resolved type node into a codec expression.
// A node whose own name (or alias name) survives in the reference set
// renders as that name, whatever its structure; that is what lets
// shared types compose instead of duplicating.
func renderType(t *typedesc.Type, ctx *renderCtx, depth int) (string, error) {
	if depth > maxRenderDepth {
		return "", errors.Wrapf(errTooDeep, "beyond %d levels", maxRenderDepth)
	}
	if name, ok := ctx.refTarget(t.Symbol); ok {
		return name, nil
	}
	if name, ok := ctx.refTarget(t.Alias); ok {
		return name, nil
	}

	kind, err := typedesc.Classify(t)
	if err != nil {
		return "", err
	}
	switch kind {
	case typedesc.KindLiteral:
		return renderLiteral(t)
	case typedesc.KindPrimitive:
		return primitiveCodec(t.Flags), nil
	case typedesc.KindUnknownObject:
		return "t.UnknownRecord", nil
	case typedesc.KindUnion:
		return renderUnion(t, ctx, depth)
	case typedesc.KindIntersection:
		exprs, err := renderAll(t.Members, ctx, depth)
		if err != nil {
			return "", err
		}
		return "t.intersection([" + strings.Join(exprs, ", ") + "])", nil
	case typedesc.KindTuple:
		return renderTuple(t, ctx, depth)
	case typedesc.KindArray:
		elem, err := renderType(t.Element, ctx, depth+1)
		if err != nil {
			return "", err
		}
		return "t.array(" + elem + ")", nil
	case typedesc.KindRecord:
		key, err := renderType(t.AliasArgs[0], ctx, depth+1)
		if err != nil {
			return "", err
		}
		val, err := renderType(t.AliasArgs[1], ctx, depth+1)
		if err != nil {
			return "", err
		}
		return "t.record(" + key + ", " + val + ")", nil
	case typedesc.KindStringIndexed:
		val, err := renderType(t.StringIndex, ctx, depth+1)
		if err != nil {
			return "", err
		}
		return "t.record(t.string, " + val + ")", nil
	case typedesc.KindNumberIndexed:
		val, err := renderType(t.NumberIndex, ctx, depth+1)
		if err != nil {
			return "", err
		}
		return "t.record(t.number, " + val + ")", nil
	case typedesc.KindFunction:
		return "t.Function", nil
	case typedesc.KindObject:
		return renderObject(t, ctx, depth)
	case typedesc.KindVoid:
		return "t.void", nil
	case typedesc.KindTop:
		return "t.unknown", nil
	}
	return "", errors.Newf("no renderer for kind %q", kind)
}

func renderLiteral(t *typedesc.Type) (string, error) {
	l := t.Literal
	if l == nil {
		return "", errors.New("literal type carries no value")
	}
	switch {
	case t.Flags&typedesc.FlagStringLiteral != 0:
		return `t.literal("` + escapeString(l.Str) + `")`, nil
	case t.Flags&typedesc.FlagNumberLiteral != 0:
		return "t.literal(" + formatNumber(l.Num) + ")", nil
	default:
		if l.Bool {
			return "t.literal(true)", nil
		}
		return "t.literal(false)", nil
	}
}

// primitiveCodec maps a primitive flag to its codec. Priority follows
// the classifier's category order.
func primitiveCodec(f typedesc.Flags) string {
	switch {
	case f&typedesc.FlagString != 0:
		return "t.string"
	case f&typedesc.FlagNumber != 0:
		return "t.number"
	case f&typedesc.FlagBoolean != 0:
		return "t.boolean"
	case f&typedesc.FlagNull != 0:
		return "t.null"
	default:
		return "t.undefined"
	}
}

// renderAll renders a member list, depth-stepped once for the whole
// list.
func renderAll(members []*typedesc.Type, ctx *renderCtx, depth int) ([]string, error) {
	exprs := make([]string, len(members))
	for i, m := range members {
		expr, err := renderType(m, ctx, depth+1)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

// renderUnion prefers the enumerated-keys form when every member is a
// string literal; a key lookup is both shorter and cheaper than a
// union of literal codecs. Anything else becomes a union combinator
// with member order preserved and no deduplication.
func renderUnion(t *typedesc.Type, ctx *renderCtx, depth int) (string, error) {
	if keys, ok := stringLiteralKeys(t.Members); ok {
		return "t.keyof({" + keys + "})", nil
	}
	exprs, err := renderAll(t.Members, ctx, depth)
	if err != nil {
		return "", err
	}
	return "t.union([" + strings.Join(exprs, ", ") + "])", nil
}

// stringLiteralKeys renders `"a": null, "b": null` when every member is
// a string literal, preserving member order.
func stringLiteralKeys(members []*typedesc.Type) (string, bool) {
	if len(members) == 0 {
		return "", false
	}
	var sb strings.Builder
	for i, m := range members {
		if m.Flags&typedesc.FlagStringLiteral == 0 || m.Literal == nil {
			return "", false
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(`"` + escapeString(m.Literal.Str) + `": null`)
	}
	return sb.String(), true
}

// renderTuple emits the fixed elements. A variadic tail cannot be
// expressed in a fixed-length tuple codec, so it is dropped with a
// warning rather than failing the declaration.
func renderTuple(t *typedesc.Type, ctx *renderCtx, depth int) (string, error) {
	if t.Rest {
		ctx.diags.WarnHint(diagnostic.CategoryUnsupportedShape, ctx.file, ctx.decl,
			"variadic tuple tail dropped from the generated codec",
			"validate the variadic part separately or use an array type")
	}
	exprs, err := renderAll(t.Elements, ctx, depth)
	if err != nil {
		return "", err
	}
	return "t.tuple([" + strings.Join(exprs, ", ") + "])", nil
}

// renderObject partitions properties on the declaration-site optional
// marker: required fields form an exact-fields codec, optional ones a
// partial codec, both at once intersect. No properties at all is the
// empty object codec.
func renderObject(t *typedesc.Type, ctx *renderCtx, depth int) (string, error) {
	var required, optional []string
	for i := range t.Properties {
		p := &t.Properties[i]
		expr, err := renderProperty(p, ctx, depth)
		if err != nil {
			return "", err
		}
		entry := objectKey(p.Name) + ": " + expr
		if p.Optional {
			optional = append(optional, entry)
		} else {
			required = append(required, entry)
		}
	}
	switch {
	case len(required) > 0 && len(optional) > 0:
		return "t.intersection([t.type({" + strings.Join(required, ", ") +
			"}), t.partial({" + strings.Join(optional, ", ") + "})])", nil
	case len(optional) > 0:
		return "t.partial({" + strings.Join(optional, ", ") + "})", nil
	default:
		return "t.type({" + strings.Join(required, ", ") + "})", nil
	}
}

// renderProperty renders one property's codec. The declared annotation
// wins when every name it references survives in the reference set;
// otherwise the resolved structural type is rendered. Keeping the
// annotation is what preserves a nominal type's identity when it sits
// inside an object or a union.
func renderProperty(p *typedesc.Property, ctx *renderCtx, depth int) (string, error) {
	if expr, ok := renderDeclared(p, ctx); ok {
		return expr, nil
	}
	expr, err := renderType(p.Type, ctx, depth+1)
	if err != nil {
		return "", err
	}
	if !p.Optional {
		return expr, nil
	}
	return foldUndefined(p.Type, expr), nil
}

// renderDeclared renders from the property's syntax-level annotation:
// a single named reference, or a union of references and primitive
// keywords. References collapsed onto the same base deduplicate.
func renderDeclared(p *typedesc.Property, ctx *renderCtx) (string, bool) {
	a := p.Declared
	if a == nil {
		return "", false
	}
	if a.Ref != "" {
		name, ok := ctx.refTarget(a.Ref)
		if !ok {
			return "", false
		}
		if p.Optional {
			return "t.union([t.undefined, " + name + "])", true
		}
		return name, true
	}
	if len(a.Union) == 0 {
		return "", false
	}
	var terms []string
	seen := make(map[string]bool)
	hasUndefined := false
	for _, term := range a.Union {
		if term.Ref != "" {
			name, ok := ctx.refTarget(term.Ref)
			if !ok {
				return "", false
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			terms = append(terms, name)
			continue
		}
		if term.Prim == "undefined" {
			hasUndefined = true
		}
		terms = append(terms, "t."+term.Prim)
	}
	if p.Optional && !hasUndefined {
		terms = append([]string{"t.undefined"}, terms...)
	}
	if len(terms) == 1 {
		return terms[0], true
	}
	return "t.union([" + strings.Join(terms, ", ") + "])", true
}

// foldUndefined widens an optional property's codec so an absent value
// passes. A union combinator admits t.undefined as an extra leading
// member; every other expression nests inside a two-member union.
// Types already accepting undefined stay as rendered.
func foldUndefined(t *typedesc.Type, expr string) string {
	if acceptsUndefined(t) {
		return expr
	}
	if rest, ok := strings.CutPrefix(expr, "t.union(["); ok {
		return "t.union([t.undefined, " + rest
	}
	return "t.union([t.undefined, " + expr + "])"
}

func acceptsUndefined(t *typedesc.Type) bool {
	if t.Flags&typedesc.FlagUndefined != 0 {
		return true
	}
	if t.Flags&typedesc.FlagUnion != 0 {
		for _, m := range t.Members {
			if m.Flags&typedesc.FlagUndefined != 0 {
				return true
			}
		}
	}
	return false
}
