package store

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/CTAG07/wisp"
)

// Manager is the central controller for a persistent template registry. It
// owns a SQLStore, keeps an in-memory wisp.Engine warm from it, and renders
// by name. All methods are concurrency-safe.
type Manager struct {
	logger *slog.Logger
	config Config
	store  *SQLStore
	engine *wisp.Engine
	mu     sync.RWMutex

	refreshCount int
}

// NewManager opens (or creates) the sqlite database named by config's
// DataSource, wraps it in a SQLStore, and performs an initial Refresh to
// warm the in-memory registry.
func NewManager(logger *slog.Logger, config Config) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s, err := OpenSQLStore(config.DataSource, logger)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		logger: logger,
		config: config,
		store:  s,
	}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	logger.Info("template manager initialized", "data_source", config.DataSource)
	return m, nil
}

// Close releases the underlying SQLStore's prepared statements.
func (m *Manager) Close() {
	m.store.Close()
}

// Refresh rebuilds the in-memory wisp.Engine from every row currently in the
// SQLStore. This lets templates added or edited out-of-band (a manifest
// load, a direct SQL write) become visible to Execute without restarting
// the process.
func (m *Manager) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := m.store.List()
	engine := wisp.NewEngine()
	for _, name := range names {
		src, ok := m.store.Source(name)
		if !ok {
			m.logger.Warn("template disappeared during refresh", "name", name)
			continue
		}
		if err := engine.ReplaceTemplate(name, src); err != nil {
			return fmt.Errorf("wisp/store: refresh %q: %w", name, err)
		}
	}
	if m.config.MaxRenderDepth > 0 {
		engine.Renderer().MaxDepth = m.config.MaxRenderDepth
	}
	m.engine = engine
	m.refreshCount++

	if m.config.RefreshLogInterval <= 0 || m.refreshCount%m.config.RefreshLogInterval == 0 {
		m.logger.Debug("registry refreshed",
			"templates", len(names),
			"corpus_size", humanize.Bytes(uint64(m.store.corpusBytes())),
		)
	}
	return nil
}

// Execute renders the named template against ctx and writes the result to
// w. A nil ctx is treated as an empty wisp.Context.
func (m *Manager) Execute(w io.Writer, name string, ctx *wisp.Context) error {
	m.mu.RLock()
	engine := m.engine
	m.mu.RUnlock()

	out, err := engine.Render(name, ctx)
	if err != nil {
		return err
	}
	n, err := io.WriteString(w, out)
	if err != nil {
		return err
	}
	m.logger.Debug("template rendered", "name", name, "size", humanize.Bytes(uint64(n)))
	return nil
}

// RequiredVariables reports the variable paths the named template needs
// that ctx does not currently supply, using the currently-refreshed
// in-memory registry.
func (m *Manager) RequiredVariables(name string, ctx *wisp.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.RequiredVariables(name, ctx)
}

// Add validates and stores source under name (failing on a duplicate name),
// then refreshes the in-memory registry.
func (m *Manager) Add(name, source string) error {
	if m.config.MaxSourceBytes > 0 && len(source) > m.config.MaxSourceBytes {
		return fmt.Errorf("wisp/store: template %q exceeds max source size (%d > %d bytes)", name, len(source), m.config.MaxSourceBytes)
	}
	if err := m.store.Add(name, source); err != nil {
		return err
	}
	return m.Refresh()
}

// Replace validates and stores source under name unconditionally, then
// refreshes the in-memory registry.
func (m *Manager) Replace(name, source string) error {
	if m.config.MaxSourceBytes > 0 && len(source) > m.config.MaxSourceBytes {
		return fmt.Errorf("wisp/store: template %q exceeds max source size (%d > %d bytes)", name, len(source), m.config.MaxSourceBytes)
	}
	if err := m.store.Replace(name, source); err != nil {
		return err
	}
	return m.Refresh()
}

// Remove deletes name from the store and refreshes the in-memory registry.
func (m *Manager) Remove(name string) error {
	if err := m.store.Remove(name); err != nil {
		return err
	}
	return m.Refresh()
}

// Names returns the currently-loaded template names.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.Registry().List()
}

// Store exposes the underlying SQLStore, e.g. for Snapshot/Restore or
// direct revision inspection.
func (m *Manager) Store() *SQLStore {
	return m.store
}
