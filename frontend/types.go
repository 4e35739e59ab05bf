package frontend

// Type is the discriminated variant for symbol types. The three
// implementations cover every declarable entity: basic scalars, arrays of
// basic scalars, and callables
type Type interface {
	typeName() string
}

// BasicType wraps one of the four basic types
type BasicType struct {
	Kind Basic
}

func (t *BasicType) typeName() string { return t.Kind.String() }

// ArrayType carries the inclusive bounds of every dimension and the element
// type. Elements are always basic, arrays of arrays aren't in the grammar
type ArrayType struct {
	Dims [][2]int
	Elem *BasicType
}

func (t *ArrayType) typeName() string { return "array" }

// CallableType represents a procedure or function signature. Params points at
// the parameter entries inserted into the callable's own scope, which the
// type also owns
type CallableType struct {
	IsFunction bool
	Return     *BasicType
	Params     []*Entry
	Locals     *Scope
}

func (t *CallableType) typeName() string {
	if t.IsFunction {
		return "function"
	}

	return "procedure"
}

// typeName stringifies a possibly missing type for diagnostics
func typeName(t Type) string {
	if t == nil {
		return "unknown"
	}

	return t.typeName()
}

func isBasicKind(t Type, kind Basic) bool {
	if basic, ok := t.(*BasicType); ok {
		return basic.Kind == kind
	}

	return false
}

func isNumericType(t Type) bool {
	return isBasicKind(t, Integer) || isBasicKind(t, Real)
}

func isIntegerType(t Type) bool {
	return isBasicKind(t, Integer)
}

func isBooleanType(t Type) bool {
	return isBasicKind(t, Boolean)
}

// numericResult applies the widening rule for arithmetic: real absorbs
// integer, two integers stay integer. Non-numeric operands have already been
// diagnosed by the caller so integer is a safe fallback
func numericResult(left Type, right Type) *BasicType {
	if isBasicKind(left, Real) || isBasicKind(right, Real) {
		return &BasicType{Kind: Real}
	}

	return &BasicType{Kind: Integer}
}

// typesCompatible reports whether a source value may flow into a target slot.
// Basic types match exactly except that an integer widens to a real. Arrays
// delegate to their element types. Callables never match
func typesCompatible(target Type, source Type) bool {
	switch target := target.(type) {
	case *BasicType:
		if source, ok := source.(*BasicType); ok {
			if target.Kind == source.Kind {
				return true
			}

			return target.Kind == Real && source.Kind == Integer
		}
	case *ArrayType:
		if source, ok := source.(*ArrayType); ok {
			return typesCompatible(target.Elem, source.Elem)
		}
	}

	return false
}
