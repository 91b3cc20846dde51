package backend

import "github.com/fortunaclub/spinbot/internal/core/domain"

// mapStatus converts an HTTP status into the domain error taxonomy.
func mapStatus(code int) error {
	switch {
	case code == 401:
		return domain.ErrAuthRejected
	case code == 404:
		return domain.ErrNotRegistered
	case code == 412:
		return domain.ErrOutOfRange
	case code == 429:
		return domain.ErrRateLimited
	case code == 400 || code == 422:
		return domain.ErrValidationFailed
	default:
		return domain.ErrBackendUnavailable
	}
}
