// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their constructors with the storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (claimsdq/internal/storage/sqlite)
//   - "postgres" (claimsdq/internal/storage/postgres)
//
// Typical usage (in cmd/claimsdq/main.go or a similar wiring layer):
//
//	import _ "claimsdq/internal/storage/all" // enable all built-in backends
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application to depend only on the storage
// abstraction rather than individual backends. A binary that needs only a
// subset can blank-import the required backends directly instead.
package all

import (
	_ "claimsdq/internal/storage/postgres"
	_ "claimsdq/internal/storage/sqlite"
)
