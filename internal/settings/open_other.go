//go:build !windows

package settings

import "context"

func open(ctx context.Context, dir string) (Store, error) {
	return OpenSQLite(ctx, dir)
}
