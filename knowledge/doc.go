// Package knowledge provides retrieval and storage of tenant-scoped knowledge
// items. The Backend interface is the transport SPI (HTTP against the
// platform, or in-memory for tests), Activities exposes a backend to the
// orchestration engine, and Service is the context-aware facade handlers use.
package knowledge
