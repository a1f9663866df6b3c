// Package exitcode defines exit codes for the CLI.
package exitcode

import "tasky/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, an unknown record, or a rejected payload.
	UserError = 1

	// AuthError indicates a missing, expired or rejected session.
	AuthError = 2

	// BackendError indicates a network, decode or server-side failure.
	BackendError = 3
)

// FromError maps a client error to an exit code.
func FromError(err error) int {
	if err == nil {
		return Success
	}
	switch service.KindOf(err) {
	case service.KindValidation, service.KindNotFound:
		return UserError
	case service.KindAuth:
		return AuthError
	default:
		return BackendError
	}
}
