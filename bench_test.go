package wisp

import "testing"

func BenchmarkParse(b *testing.B) {
	src := "Hello, {{ name }}! {{% if flag %}}{{% for item in items %}}{{ item }}{{% endfor %}}{{% else %}}none{{% endif %}}"
	for i := 0; i < b.N; i++ {
		if _, err := Parse(src); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	tmpl, err := Parse("Hello, {{ name }}! {{% if flag %}}{{% for item in items %}}[{{ item }}]{{% endfor %}}{{% else %}}none{{% endif %}}")
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	ctx := NewContext().
		Insert("name", String("gopher")).
		Insert("flag", Bool(true)).
		Insert("items", NewIterable([]Value{String("a"), String("b"), String("c")}))
	renderer := NewRenderer()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := renderer.Render("bench", tmpl, ctx, nil); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
