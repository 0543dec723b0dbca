// Package domain contains the core entities of the job platform, the
// repository interfaces the adapters implement, and the sentinel errors
// shared across layers. It has no dependencies on transport or storage.
package domain
