package apperr

func CredentialsNotFound(target string) *Error {
	return &Error{Kind: KindCredentialsNotFound, Target: target}
}

// Vault wraps a secret store failure. cause may be nil.
func Vault(operation string, cause error) *Error {
	return &Error{Kind: KindVault, Operation: operation, Cause: cause}
}

func InvalidCredentials(reason string) *Error {
	return &Error{Kind: KindInvalidCredentials, Reason: reason}
}

func InvalidHostname(hostname, reason string) *Error {
	return &Error{Kind: KindInvalidHostname, Hostname: hostname, Reason: reason}
}

func HostNotFound(hostname string) *Error {
	return &Error{Kind: KindHostNotFound, Hostname: hostname}
}

func Catalog(operation string, cause error) *Error {
	return &Error{Kind: KindCatalog, Operation: operation, Cause: cause}
}

// Document reports a structured document (recency, config) that could not be
// encoded or decoded.
func Document(context string, cause error) *Error {
	return &Error{Kind: KindDocument, Context: context, Cause: cause}
}

func File(path string, cause error) *Error {
	return &Error{Kind: KindFile, Path: path, Cause: cause}
}

func LdapConnection(server string, port int, cause error) *Error {
	return &Error{Kind: KindLdapConnection, Server: server, Port: port, Cause: cause}
}

func LdapBind(username string, cause error) *Error {
	return &Error{Kind: KindLdapBind, Username: username, Cause: cause}
}

func LdapSearch(baseDN string, cause error) *Error {
	return &Error{Kind: KindLdapSearch, BaseDN: baseDN, Cause: cause}
}

// RdpFile reports a failure to produce the .rdp file. cause may be nil; when
// set it is kept for errors.Is and its text becomes the reason.
func RdpFile(hostname, reason string, cause error) *Error {
	if reason == "" && cause != nil {
		reason = cause.Error()
	}
	return &Error{Kind: KindRdpFile, Hostname: hostname, Reason: reason, Cause: cause}
}

func RdpLaunch(cause error) *Error {
	return &Error{Kind: KindRdpLaunch, Cause: cause}
}

func Settings(operation string, cause error) *Error {
	return &Error{Kind: KindSettings, Operation: operation, Cause: cause}
}

func WindowNotFound(name string) *Error {
	return &Error{Kind: KindWindowNotFound, Name: name}
}

func WindowOp(operation string, cause error) *Error {
	return &Error{Kind: KindWindowOp, Operation: operation, Cause: cause}
}

func Other(msg string, cause error) *Error {
	return &Error{Kind: KindOther, Msg: msg, Cause: cause}
}
