// Package services contains the operations the RDPLaunch shell calls.
//
// Each service wraps one concern of the core (identities, the host catalog,
// connections, reset, OS integration) behind a small interface. Errors are
// *apperr.Error values ready for apperr.Project; absence is reported as a nil
// result, not an error.
package services
