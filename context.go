package wisp

// Context is the ordered-insertion mapping from identifier to Value that
// forms the root scope of a render. Lookups by name are O(1); insertion
// order is preserved for callers that want to enumerate a Context (e.g. a
// diagnostic dump), though rendering itself never depends on it.
type Context struct {
	order []string
	data  map[string]Value
}

// NewContext returns a new, empty Context.
func NewContext() *Context {
	return &Context{data: make(map[string]Value)}
}

// Insert binds name to v, overwriting any existing binding, and returns the
// Context to allow chaining.
func (c *Context) Insert(name string, v Value) *Context {
	if _, exists := c.data[name]; !exists {
		c.order = append(c.order, name)
	}
	c.data[name] = v
	return c
}

// Get returns the value bound to name and true if name is present.
func (c *Context) Get(name string) (Value, bool) {
	v, ok := c.data[name]
	return v, ok
}

// Names returns the bound identifiers in insertion order.
func (c *Context) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
