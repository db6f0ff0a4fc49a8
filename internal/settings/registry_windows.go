//go:build windows

package settings

import (
	"context"
	"errors"

	"golang.org/x/sys/windows/registry"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
)

// Registry binds to HKEY_CURRENT_USER. path is a subkey of the hive.
type Registry struct {
	root registry.Key
}

func open(context.Context, string) (Store, error) {
	return &Registry{root: registry.CURRENT_USER}, nil
}

func (r *Registry) ReadString(_ context.Context, path, name string) (string, bool, error) {
	k, err := registry.OpenKey(r.root, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, apperr.Settings("read_string", err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, apperr.Settings("read_string", err)
	}
	return v, true, nil
}

func (r *Registry) WriteString(_ context.Context, path, name, value string) error {
	k, _, err := registry.CreateKey(r.root, path, registry.SET_VALUE)
	if err != nil {
		return apperr.Settings("write_string", err)
	}
	defer k.Close()

	if err := k.SetStringValue(name, value); err != nil {
		return apperr.Settings("write_string", err)
	}
	return nil
}

func (r *Registry) ReadInteger(_ context.Context, path, name string) (uint64, bool, error) {
	k, err := registry.OpenKey(r.root, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, apperr.Settings("read_integer", err)
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, apperr.Settings("read_integer", err)
	}
	return v, true, nil
}

func (r *Registry) WriteInteger(_ context.Context, path, name string, value uint32) error {
	k, _, err := registry.CreateKey(r.root, path, registry.SET_VALUE)
	if err != nil {
		return apperr.Settings("write_integer", err)
	}
	defer k.Close()

	if err := k.SetDWordValue(name, value); err != nil {
		return apperr.Settings("write_integer", err)
	}
	return nil
}

func (r *Registry) Delete(_ context.Context, path, name string) error {
	k, err := registry.OpenKey(r.root, path, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return apperr.Settings("delete", err)
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return apperr.Settings("delete", err)
	}
	return nil
}

func (r *Registry) Close() error { return nil }
