package wisp

import "testing"

func TestContextInsertAndGet(t *testing.T) {
	ctx := NewContext()
	if _, ok := ctx.Get("name"); ok {
		t.Fatalf("expected empty context to miss")
	}
	ctx.Insert("name", String("gopher"))
	v, ok := ctx.Get("name")
	if !ok {
		t.Fatalf("expected name to be present")
	}
	s, _ := v.AsString()
	if s != "gopher" {
		t.Errorf("got %q", s)
	}
}

func TestContextInsertOverwrite(t *testing.T) {
	ctx := NewContext().Insert("x", String("a")).Insert("x", String("b"))
	v, _ := ctx.Get("x")
	s, _ := v.AsString()
	if s != "b" {
		t.Errorf("got %q want b", s)
	}
	if len(ctx.Names()) != 1 {
		t.Errorf("expected 1 name after overwrite, got %d", len(ctx.Names()))
	}
}

func TestContextNamesPreservesInsertionOrder(t *testing.T) {
	ctx := NewContext().Insert("c", String("1")).Insert("a", String("2")).Insert("b", String("3"))
	want := []string{"c", "a", "b"}
	got := ctx.Names()
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestValueTruthiness(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nonempty string", String("x"), true},
		{"empty string", String(""), false},
		{"true bool", Bool(true), true},
		{"false bool", Bool(false), false},
		{"nonempty iterable", NewIterable([]Value{String("a")}), true},
		{"empty iterable", NewIterable(nil), false},
		{"nonempty object", NewObject(map[string]Value{"a": Bool(true)}), true},
		{"empty object", NewObject(nil), false},
	}
	for _, tc := range cases {
		if got := tc.v.Truthy(); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestValueFieldAccess(t *testing.T) {
	obj := NewObject(map[string]Value{"name": String("gopher")})
	v, ok := obj.Field("name")
	if !ok {
		t.Fatalf("expected field to be present")
	}
	s, _ := v.AsString()
	if s != "gopher" {
		t.Errorf("got %q", s)
	}
	if _, ok := obj.Field("missing"); ok {
		t.Errorf("expected missing field to be absent")
	}
	if _, ok := String("x").Field("anything"); ok {
		t.Errorf("expected Field on a non-object to fail")
	}
}
