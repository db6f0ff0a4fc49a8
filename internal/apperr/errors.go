// Package apperr defines the tagged error model shared by every RDPLaunch
// component and its projection into the flat object handed to the shell.
//
// Every failure inside the core is an *Error carrying a Kind, the context
// fields that kind needs to build a user-facing message, and an optional
// wrapped cause. Callers match kinds with IsKind or errors.As; the cause is
// reachable through errors.Is/errors.As via Unwrap.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies an error variant.
type Kind int

const (
	KindOther Kind = iota
	KindCredentialsNotFound
	KindVault
	KindInvalidCredentials
	KindInvalidHostname
	KindHostNotFound
	KindCatalog
	KindDocument
	KindFile
	KindLdapConnection
	KindLdapBind
	KindLdapSearch
	KindRdpFile
	KindRdpLaunch
	KindSettings
	KindWindowNotFound
	KindWindowOp
)

// Category groups kinds for the shell.
type Category string

const (
	CategoryCredentials Category = "CREDENTIALS"
	CategoryHosts       Category = "HOSTS"
	CategoryFileSystem  Category = "FILE_SYSTEM"
	CategoryLDAP        Category = "LDAP"
	CategoryRDP         Category = "RDP"
	CategorySettings    Category = "SETTINGS"
	CategoryWindow      Category = "WINDOW"
	CategoryGeneral     Category = "GENERAL"
)

type kindInfo struct {
	code     string
	category Category
}

var kinds = map[Kind]kindInfo{
	KindOther:               {"UNKNOWN_ERROR", CategoryGeneral},
	KindCredentialsNotFound: {"CREDENTIALS_NOT_FOUND", CategoryCredentials},
	KindVault:               {"VAULT_ERROR", CategoryCredentials},
	KindInvalidCredentials:  {"INVALID_CREDENTIALS", CategoryCredentials},
	KindInvalidHostname:     {"INVALID_HOSTNAME", CategoryHosts},
	KindHostNotFound:        {"HOST_NOT_FOUND", CategoryHosts},
	KindCatalog:             {"CATALOG_ERROR", CategoryHosts},
	KindDocument:            {"DOCUMENT_ERROR", CategoryFileSystem},
	KindFile:                {"FILE_ERROR", CategoryFileSystem},
	KindLdapConnection:      {"LDAP_CONNECTION_FAILED", CategoryLDAP},
	KindLdapBind:            {"LDAP_BIND_FAILED", CategoryLDAP},
	KindLdapSearch:          {"LDAP_SEARCH_FAILED", CategoryLDAP},
	KindRdpFile:             {"RDP_FILE_ERROR", CategoryRDP},
	KindRdpLaunch:           {"RDP_LAUNCH_FAILED", CategoryRDP},
	KindSettings:            {"SETTINGS_ERROR", CategorySettings},
	KindWindowNotFound:      {"WINDOW_NOT_FOUND", CategoryWindow},
	KindWindowOp:            {"WINDOW_OPERATION_FAILED", CategoryWindow},
}

// Error is a tagged failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind

	Target    string
	Operation string
	Hostname  string
	Reason    string
	Path      string
	Server    string
	Port      int
	Username  string
	BaseDN    string
	Context   string
	Name      string
	Msg       string

	Cause error
}

func (e *Error) Error() string {
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the short stable code of the error's kind.
func (e *Error) Code() string {
	return kinds[e.Kind].code
}

// Category returns the category of the error's kind.
func (e *Error) Category() Category {
	return kinds[e.Kind].category
}

// Message renders the user-facing message.
func (e *Error) Message() string {
	switch e.Kind {
	case KindCredentialsNotFound:
		return fmt.Sprintf("No credentials found for %s", e.Target)
	case KindVault:
		return withCause(fmt.Sprintf("Credential vault operation %q failed", e.Operation), e.Cause)
	case KindInvalidCredentials:
		return fmt.Sprintf("Invalid credentials: %s", e.Reason)
	case KindInvalidHostname:
		return fmt.Sprintf("Invalid hostname %q: %s", e.Hostname, e.Reason)
	case KindHostNotFound:
		return fmt.Sprintf("Host %s is not in the catalog", e.Hostname)
	case KindCatalog:
		return withCause(fmt.Sprintf("Host catalog %s failed", e.Operation), e.Cause)
	case KindDocument:
		return withCause(fmt.Sprintf("Could not process %s", e.Context), e.Cause)
	case KindFile:
		return withCause(fmt.Sprintf("File operation on %s failed", e.Path), e.Cause)
	case KindLdapConnection:
		return withCause(fmt.Sprintf("Could not connect to LDAP server %s:%d", e.Server, e.Port), e.Cause)
	case KindLdapBind:
		return withCause(fmt.Sprintf("LDAP authentication failed for %s", e.Username), e.Cause)
	case KindLdapSearch:
		return withCause(fmt.Sprintf("LDAP search under %s failed", e.BaseDN), e.Cause)
	case KindRdpFile:
		return fmt.Sprintf("Could not write RDP file for %s: %s", e.Hostname, e.Reason)
	case KindRdpLaunch:
		return withCause("Failed to start the RDP client", e.Cause)
	case KindSettings:
		return withCause(fmt.Sprintf("Settings operation %q failed", e.Operation), e.Cause)
	case KindWindowNotFound:
		return fmt.Sprintf("Window %q not found", e.Name)
	case KindWindowOp:
		return withCause(fmt.Sprintf("Window operation %q failed", e.Operation), e.Cause)
	default:
		return withCause(e.Msg, e.Cause)
	}
}

// Remediation returns a hint for the user, or "" when the kind has none.
func (e *Error) Remediation() string {
	switch e.Kind {
	case KindCredentialsNotFound:
		return "Save your domain credentials first, or store credentials for this host."
	case KindLdapConnection:
		return fmt.Sprintf("Check the domain controller name and that port %d is reachable from this machine.", e.Port)
	case KindLdapBind:
		return "Check the password. Try DOMAIN\\user or user@domain as the username."
	case KindRdpLaunch:
		return "Make sure a Remote Desktop client is installed and can be found on PATH."
	}
	return ""
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, cause)
}

// IsKind reports whether any *Error in err's chain has kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}

// Projection is the flat error object handed to the shell.
type Projection struct {
	Code        string   `json:"code"`
	Category    Category `json:"category"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation,omitempty"`
}

// Project flattens err. Errors outside the model project as KindOther and a
// nil error projects as the zero Projection.
func Project(err error) Projection {
	if err == nil {
		return Projection{}
	}
	var e *Error
	if !errors.As(err, &e) {
		e = Other(err.Error(), nil)
	}
	return Projection{
		Code:        e.Code(),
		Category:    e.Category(),
		Message:     e.Message(),
		Remediation: e.Remediation(),
	}
}
