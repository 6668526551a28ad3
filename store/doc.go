/*
Package store provides a persistent, hot-reloadable wisp.Registry backed by
SQL storage, plus the operational scaffolding around it: configuration,
structured logging, YAML manifest bulk-loading, and atomic snapshot
export/import.

Manager is the entry point most callers want: it owns a SQLStore, refreshes
an in-memory wisp.Registry from it, and exposes Execute for rendering by
name. SQLStore can also be used directly wherever any wisp.Registry is
accepted.
*/
package store
