// Package document contains concrete backends and the context-aware facade
// for the tenant-scoped document store.
//
// The canonical DocumentService interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Backend implementations
// here (in-memory, platform HTTP) can be swapped without touching calling
// code; callers should depend on the core interface rather than concrete
// types.
package document
