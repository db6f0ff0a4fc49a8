package settings

import (
	"context"
	"strings"
)

const (
	// RunKeyPath lists programs started at logon.
	RunKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

	// PersonalizeKeyPath holds the system light/dark preference.
	PersonalizeKeyPath = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

	// AppsUseLightTheme is 1 for light, 0 for dark.
	AppsUseLightTheme = "AppsUseLightTheme"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// EnableAutostart registers exe to run at logon under name.
func EnableAutostart(ctx context.Context, s Store, name, exe string) error {
	return s.WriteString(ctx, RunKeyPath, name, `"`+exe+`"`)
}

// DisableAutostart removes the logon registration. Absence is success.
func DisableAutostart(ctx context.Context, s Store, name string) error {
	return s.Delete(ctx, RunKeyPath, name)
}

// AutostartCommand returns the registered command line without quotes.
func AutostartCommand(ctx context.Context, s Store, name string) (string, bool, error) {
	v, ok, err := s.ReadString(ctx, RunKeyPath, name)
	if err != nil || !ok {
		return "", ok, err
	}
	return strings.Trim(v, `"`), true, nil
}

// SystemTheme reads the OS preference. A missing value means light.
func SystemTheme(ctx context.Context, s Store) (Theme, error) {
	v, ok, err := s.ReadInteger(ctx, PersonalizeKeyPath, AppsUseLightTheme)
	if err != nil {
		return "", err
	}
	if ok && v == 0 {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}
