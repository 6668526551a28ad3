/*
Package wisp is a small, fast templating engine for expanding parameterised
text templates into rendered strings.

Templates support variable substitution (`{{ path }}`), conditional branching
with a small boolean expression language (`{{% if %}}` / `{{% elif %}}` /
`{{% else %}}` / `{{% endif %}}`), iteration over sequences
(`{{% for %}}` / `{{% endfor %}}`), and inclusion of other registered
templates (`{{<< name }}`). It deliberately has no filters, no arbitrary
expression language, no auto-escaping, and no whitespace-trim syntax: the
narrow feature set keeps parsing and rendering cheap.

A template is parsed once with Parse and rendered any number of times with a
Renderer against a Context and a Registry of other templates it may include.
Engine bundles a Renderer with an in-memory Registry for the common case
where a caller just wants to add named templates and render them by name.
*/
package wisp
