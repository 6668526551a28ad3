package wisp

import "testing"

func TestConditionEvaluation(t *testing.T) {
	ctx := NewContext().
		Insert("a", Bool(true)).
		Insert("b", Bool(false)).
		Insert("name", String("gopher")).
		Insert("empty", String(""))

	cases := []struct {
		src  string
		want bool
	}{
		{"a", true},
		{"b", false},
		{"!b", true},
		{"!a", false},
		{"a && b", false},
		{"a || b", true},
		{"a && !b", true},
		{"(a || b) && !b", true},
		{"name", true},
		{"empty", false},
		{"!empty", true},
		{"missing", false},
		{"!missing", true},
		{"a && (b || name)", true},
	}
	for _, tc := range cases {
		tmpl, err := Parse("{{% if " + tc.src + " %}}Y{{% else %}}N{{% endif %}}")
		if err != nil {
			t.Fatalf("%q: parse error: %v", tc.src, err)
		}
		out, err := NewRenderer().Render("t", tmpl, ctx, nil)
		if err != nil {
			t.Fatalf("%q: render error: %v", tc.src, err)
		}
		want := "N"
		if tc.want {
			want = "Y"
		}
		if out != want {
			t.Errorf("%q: got %q want %q", tc.src, out, want)
		}
	}
}

func TestConditionPrecedence(t *testing.T) {
	// && should bind tighter than ||: "a || b && c" == "a || (b && c)".
	ctx := NewContext().
		Insert("a", Bool(true)).
		Insert("b", Bool(false)).
		Insert("c", Bool(false))
	tmpl, err := Parse("{{% if a || b && c %}}Y{{% else %}}N{{% endif %}}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, err := NewRenderer().Render("t", tmpl, ctx, nil)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "Y" {
		t.Errorf("got %q want Y", out)
	}
}

func TestConditionMalformed(t *testing.T) {
	cases := []string{
		"{{% if %}}{{% endif %}}",
		"{{% if a && %}}{{% endif %}}",
		"{{% if (a %}}{{% endif %}}",
		"{{% if a b %}}{{% endif %}}",
		"{{% if .a %}}{{% endif %}}",
	}
	for _, src := range cases {
		_, err := Parse(src)
		if err == nil {
			t.Errorf("%q: expected an error", src)
			continue
		}
		pe, ok := err.(*ParseError)
		if !ok {
			t.Errorf("%q: expected *ParseError, got %T", src, err)
			continue
		}
		if pe.Kind != KindMalformedExpression {
			t.Errorf("%q: got kind %v", src, pe.Kind)
		}
	}
}

func TestConditionDottedPath(t *testing.T) {
	ctx := NewContext().Insert("user", NewObject(map[string]Value{
		"active": Bool(true),
	}))
	tmpl, err := Parse("{{% if user.active %}}Y{{% else %}}N{{% endif %}}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, err := NewRenderer().Render("t", tmpl, ctx, nil)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "Y" {
		t.Errorf("got %q want Y", out)
	}
}
