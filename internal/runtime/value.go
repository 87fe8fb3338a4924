// Package runtime implements the evaluator's value model, lexical
// environments, function and class objects, control-flow signals, the
// cooperative-scheduling promise contract, and the memory tracker the
// tests use to assert deterministic teardown.
package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/ember/internal/token"
)

// Value is the tagged union every ember runtime value satisfies. The tag
// is the concrete Go type, switched on directly in the evaluator's hot
// path.
type Value interface {
	TypeName() string
	value()
}

// Undefined is the zero value of an unbound or absent slot.
type Undefined struct{}

func (Undefined) TypeName() string { return "undefined" }
func (Undefined) value()           {}

// Null is the explicit `null` literal.
type Null struct{}

func (Null) TypeName() string { return "object" } // typeof null === "object", matching the host language
func (Null) value()            {}

// Bool is a boolean value.
type Bool bool

func (Bool) TypeName() string { return "boolean" }
func (Bool) value()            {}

// Number is an IEEE-754 double; all arithmetic goes through float64.
type Number float64

func (Number) TypeName() string { return "number" }
func (Number) value()            {}

// String is a UTF-8 string value.
type String string

func (String) TypeName() string { return "string" }
func (String) value()            {}

// Array is an ordered, mutable sequence. Holes are represented by
// Undefined, never by a nil Value.
type Array struct {
	Elements []Value
}

func (*Array) TypeName() string { return "object" }
func (*Array) value()            {}

// NewArray constructs an Array from elements, replacing any nil entries
// with Undefined so holes are always addressable.
func NewArray(elements ...Value) *Array {
	for i, e := range elements {
		if e == nil {
			elements[i] = Undefined{}
		}
	}
	return &Array{Elements: elements}
}

// Object is a mapping from string key to Value that preserves
// first-insertion key order; Proto is the nominal prototype link used for
// class instances (nil for plain object literals).
type Object struct {
	keys  []string
	props map[string]Value
	Proto *Object
	// Class, when non-nil, identifies the class this object is an instance
	// of; used by instanceof and method dispatch.
	Class *Class
}

func (*Object) TypeName() string { return "object" }
func (*Object) value()            {}

// NewObject creates an empty object with no prototype.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Get returns the value bound to key, searching the prototype chain, and
// whether it was found anywhere in the chain.
func (o *Object) Get(key string) (Value, bool) {
	if v, ok := o.props[key]; ok {
		return v, true
	}
	if o.Proto != nil {
		return o.Proto.Get(key)
	}
	return nil, false
}

// GetOwn returns only a property defined directly on o, ignoring the
// prototype chain.
func (o *Object) GetOwn(key string) (Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

// Set defines or overwrites an own property. New keys are appended to the
// insertion order; overwriting an existing key does not reorder it.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = v
}

// Delete removes an own property, if present.
func (o *Object) Delete(key string) {
	if _, exists := o.props[key]; !exists {
		return
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns own keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// OwnAndInheritedKeys walks the prototype chain collecting own-then-
// inherited enumerable keys in insertion order, skipping keys already seen
// closer to the receiver — the iteration order `for...in` uses.
func (o *Object) OwnAndInheritedKeys() []string {
	seen := make(map[string]bool)
	var out []string
	for cur := o; cur != nil; cur = cur.Proto {
		for _, k := range cur.keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// ErrorValue is a program-visible error object: the payload of a `throw`
// that is itself already an Error, or the wrapper the evaluator builds
// around a non-Error thrown value.
type ErrorValue struct {
	Kind    string
	Message string
	Payload Value // the original thrown value, for UserThrown

	// Pos/HasPos carry the source coordinates of the fault that produced
	// this error, when known, so a diagnostic formatted after the value
	// has crossed the throw-signal boundary can still point at the
	// faulting statement instead of losing its position.
	Pos    token.Position
	HasPos bool
}

func (*ErrorValue) TypeName() string { return "object" }
func (*ErrorValue) value()            {}

// HostOpaque carries a caller-supplied global (a promise implementation, a
// logging sink, ...) whose internals the evaluator never inspects beyond
// the generic Value operations.
type HostOpaque struct {
	Label string
	Data  any
}

func (HostOpaque) TypeName() string { return "object" }
func (HostOpaque) value()            {}

// Truthy implements the language's "falsey" set: false, 0, NaN, "", null,
// undefined are falsey; everything else (including empty arrays/objects)
// is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Undefined:
		return false
	case Null:
		return false
	case Bool:
		return bool(t)
	case Number:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case String:
		return len(t) > 0
	default:
		return true
	}
}

// IsNullish reports whether v is null or undefined — the set the
// nullish-coalescing operator (`??`) and optional chaining treat
// specially.
func IsNullish(v Value) bool {
	switch v.(type) {
	case Undefined, Null:
		return true
	default:
		return false
	}
}

// ToString stringifies v for template interpolation, `+` concatenation,
// and computed-property-key coercion.
func ToString(v Value) string {
	switch t := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(float64(t))
	case String:
		return string(t)
	case *Array:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			if _, ok := e.(Undefined); ok {
				parts[i] = ""
				continue
			}
			parts[i] = ToString(e)
		}
		return strings.Join(parts, ",")
	case *Object:
		return "[object Object]"
	case *Function:
		return "[function " + t.Name + "]"
	case *Class:
		return "[class " + t.Name + "]"
	case *ErrorValue:
		if t.Kind == "" {
			return t.Message
		}
		return t.Kind + ": " + t.Message
	case HostOpaque:
		return "[host " + t.Label + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToNumber coerces v to a number following the host language's mixed-type
// arithmetic coercions.
func ToNumber(v Value) float64 {
	switch t := v.(type) {
	case Undefined:
		return math.NaN()
	case Null:
		return 0
	case Bool:
		if t {
			return 1
		}
		return 0
	case Number:
		return float64(t)
	case String:
		s := strings.TrimSpace(string(t))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// StrictEquals implements `===`: same type and same value, no coercion.
// Arrays/objects/functions/classes compare by identity.
func StrictEquals(a, b Value) bool {
	switch av := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && float64(av) == float64(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *ErrorValue:
		bv, ok := b.(*ErrorValue)
		return ok && av == bv
	default:
		return false
	}
}

// LooseEquals implements `==`: StrictEquals plus the host language's
// nullish-unification (null == undefined) and numeric/string coercion.
func LooseEquals(a, b Value) bool {
	if StrictEquals(a, b) {
		return true
	}
	if IsNullish(a) && IsNullish(b) {
		return true
	}
	if IsNullish(a) || IsNullish(b) {
		return false
	}
	_, aNum := a.(Number)
	_, bNum := b.(Number)
	_, aStr := a.(String)
	_, bStr := b.(String)
	_, aBool := a.(Bool)
	_, bBool := b.(Bool)
	if (aNum || aStr || aBool) && (bNum || bStr || bBool) {
		return ToNumber(a) == ToNumber(b)
	}
	return false
}
