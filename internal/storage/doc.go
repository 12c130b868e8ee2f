// Package storage provides the key-value blob persistence used by the
// schedule engine.
//
// It currently supports:
//   - A dependency-free file backend (one document per key)
//   - SQLite (optional build tag)
package storage
