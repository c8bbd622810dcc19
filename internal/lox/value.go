package lox

import (
	"fmt"
	"strconv"
	"time"
)

// Value is the runtime value model from spec.md §3: nil, bool,
// float64, string, a Callable, or an *Instance. Go's `any` plays the
// role of the tagged union; type switches in the interpreter dispatch
// on the dynamic type the way the teacher's evaluator does.
type Value = any

// Callable is the capability set spec.md §3 assigns to anything
// invocable: user functions, classes (as constructors), and native
// builtins such as clock.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// Gettable is implemented by any Value that supports "." property
// access and assignment. Only *Instance implements it; folding this
// into one small interface (rather than the teacher's separate
// object.go) avoids a one-implementer abstraction.
type Gettable interface {
	Get(name Token) (Value, error)
	Set(name Token, value Value)
}

// isTruthy implements spec.md §3's truthiness rule: nil and false are
// falsy, everything else — including 0 and "" — is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// valuesEqual implements spec.md §3's equality rule: nil equals only
// nil; otherwise values are compared by structural equality within the
// same dynamic type.
func valuesEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify renders a Value for `print` output, per spec.md §4.5:
// numbers drop a trailing ".0", nil prints "nil", booleans print
// "true"/"false", everything else uses its native String().
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		text := strconv.FormatFloat(val, 'f', -1, 64)
		return text
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NativeFn wraps a builtin as a Callable without needing a named type
// per builtin, following the spec.md §4.6 shape for `clock`.
type NativeFn struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFn) Arity() int { return n.arity }

func (n *NativeFn) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}

func (n *NativeFn) String() string { return "<native fn " + n.name + ">" }

// nowSeconds backs the `clock` builtin (spec.md §4.6).
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
