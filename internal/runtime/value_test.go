package runtime

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"undefined", Undefined{}, false},
		{"null", Null{}, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"NaN", Number(math.NaN()), false},
		{"negative", Number(-1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("a"), true},
		{"empty array", NewArray(), true},
		{"empty object", NewObject(), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestToStringNumbers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1.5, "-1.5"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e20, "100000000000000000000"},
	}
	for _, tt := range tests {
		if got := ToString(Number(tt.in)); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToStringComposites(t *testing.T) {
	arr := NewArray(Number(1), Undefined{}, String("x"))
	if got := ToString(arr); got != "1,,x" {
		t.Errorf("array ToString = %q", got)
	}
	if got := ToString(NewObject()); got != "[object Object]" {
		t.Errorf("object ToString = %q", got)
	}
	if got := ToString(Null{}); got != "null" {
		t.Errorf("null ToString = %q", got)
	}
	if got := ToString(Undefined{}); got != "undefined" {
		t.Errorf("undefined ToString = %q", got)
	}
}

func TestToNumberCoercions(t *testing.T) {
	if got := ToNumber(Null{}); got != 0 {
		t.Errorf("ToNumber(null) = %v", got)
	}
	if got := ToNumber(Bool(true)); got != 1 {
		t.Errorf("ToNumber(true) = %v", got)
	}
	if got := ToNumber(String("  42 ")); got != 42 {
		t.Errorf("ToNumber(' 42 ') = %v", got)
	}
	if got := ToNumber(String("")); got != 0 {
		t.Errorf("ToNumber('') = %v", got)
	}
	if got := ToNumber(String("abc")); !math.IsNaN(got) {
		t.Errorf("ToNumber('abc') = %v, want NaN", got)
	}
	if got := ToNumber(Undefined{}); !math.IsNaN(got) {
		t.Errorf("ToNumber(undefined) = %v, want NaN", got)
	}
}

func TestStrictEquals(t *testing.T) {
	a := NewArray()
	if !StrictEquals(Number(1), Number(1)) || StrictEquals(Number(1), String("1")) {
		t.Fatal("numbers compare by value, never across types")
	}
	if !StrictEquals(a, a) || StrictEquals(a, NewArray()) {
		t.Fatal("arrays compare by identity")
	}
	if !StrictEquals(Undefined{}, Undefined{}) || StrictEquals(Undefined{}, Null{}) {
		t.Fatal("undefined is only strictly equal to itself")
	}
}

func TestLooseEquals(t *testing.T) {
	if !LooseEquals(Null{}, Undefined{}) {
		t.Fatal("null == undefined")
	}
	if LooseEquals(Null{}, Number(0)) {
		t.Fatal("null must not coerce to 0 under ==")
	}
	if !LooseEquals(Number(1), String("1")) {
		t.Fatal("1 == '1' under numeric coercion")
	}
	if !LooseEquals(Bool(true), Number(1)) {
		t.Fatal("true == 1 under numeric coercion")
	}
	if LooseEquals(String("a"), Number(0)) {
		t.Fatal("'a' coerces to NaN, which equals nothing")
	}
}

func TestObjectKeyOrderPreservedAcrossOverwrite(t *testing.T) {
	o := NewObject()
	o.Set("b", Number(1))
	o.Set("a", Number(2))
	o.Set("b", Number(3)) // overwrite must not reorder

	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("key order = %v, want [b a]", keys)
	}
	if v, _ := o.Get("b"); v != Number(3) {
		t.Fatalf("overwritten value = %v", v)
	}
}

func TestObjectDelete(t *testing.T) {
	o := NewObject()
	o.Set("a", Number(1))
	o.Set("b", Number(2))
	o.Delete("a")
	keys := o.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("keys after delete = %v", keys)
	}
}

func TestOwnAndInheritedKeys(t *testing.T) {
	proto := NewObject()
	proto.Set("p", Number(1))
	proto.Set("shared", Number(2))

	o := NewObject()
	o.Proto = proto
	o.Set("own", Number(3))
	o.Set("shared", Number(4)) // shadows the prototype's entry

	keys := o.OwnAndInheritedKeys()
	want := []string{"own", "shared", "p"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
