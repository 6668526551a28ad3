package wisp

// Engine is a small convenience type that owns a MapRegistry and a
// Renderer, giving callers a single object to add named templates to and
// render by name. It is intentionally thin: anything more elaborate
// (hot-reloading from a filesystem, persistence, logging) belongs in a
// wrapper around a Registry, such as the one in the store subpackage, not
// in Engine itself.
type Engine struct {
	registry *MapRegistry
	renderer *Renderer
}

// NewEngine returns an Engine with an empty registry and a Renderer
// configured with DefaultMaxDepth.
func NewEngine() *Engine {
	return &Engine{registry: NewMapRegistry(), renderer: NewRenderer()}
}

// AddTemplate parses source and registers it under name, failing if name is
// already registered or source doesn't parse.
func (e *Engine) AddTemplate(name, source string) error {
	t, err := Parse(source)
	if err != nil {
		return err
	}
	return e.registry.Add(name, t)
}

// ReplaceTemplate parses source and registers it under name, overwriting
// any existing template with that name.
func (e *Engine) ReplaceTemplate(name, source string) error {
	t, err := Parse(source)
	if err != nil {
		return err
	}
	e.registry.Replace(name, t)
	return nil
}

// Render renders the named template against ctx (a nil ctx is treated as an
// empty Context).
func (e *Engine) Render(name string, ctx *Context) (string, error) {
	t, ok := e.registry.Get(name)
	if !ok {
		return "", &RenderError{Template: name, Kind: KindUnknownTemplate}
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return e.renderer.Render(name, t, ctx, e.registry)
}

// RequiredVariables reports the variable paths the named template (and
// anything it includes) would need to render successfully against ctx that
// ctx does not currently supply. It returns nil if the template isn't
// registered. See Template.RequiredVariables for the analysis's caveats.
func (e *Engine) RequiredVariables(name string, ctx *Context) []string {
	t, ok := e.registry.Get(name)
	if !ok {
		return nil
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return t.RequiredVariables(ctx, e.registry)
}

// Registry exposes the Engine's underlying registry, e.g. to pass to a
// Renderer used elsewhere, or to list registered names via Lister.
func (e *Engine) Registry() *MapRegistry {
	return e.registry
}

// Renderer exposes the Engine's underlying Renderer, e.g. to adjust
// MaxDepth away from DefaultMaxDepth.
func (e *Engine) Renderer() *Renderer {
	return e.renderer
}
