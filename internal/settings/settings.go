// Package settings abstracts the per-user OS settings store used by the shell
// for autostart registration and for reading the system light/dark
// preference.
//
// Keys form a two-level hierarchy (path, name). On windows the store is the
// HKEY_CURRENT_USER registry hive; elsewhere it is a SQLite database in the
// application data directory that mirrors the same hierarchy.
package settings

import "context"

// Store is a string/integer key-value store. Reads report absence as
// ok == false with a nil error. Delete of an absent value succeeds.
type Store interface {
	ReadString(ctx context.Context, path, name string) (value string, ok bool, err error)
	WriteString(ctx context.Context, path, name, value string) error
	ReadInteger(ctx context.Context, path, name string) (value uint64, ok bool, err error)
	WriteInteger(ctx context.Context, path, name string, value uint32) error
	Delete(ctx context.Context, path, name string) error
	Close() error
}

// Open returns the settings binding for this OS. dir is where the portable
// store keeps its database; it is ignored on windows.
func Open(ctx context.Context, dir string) (Store, error) {
	return open(ctx, dir)
}
