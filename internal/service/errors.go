package service

import (
	"errors"

	"itemhub/internal/domain"
)

// storeError turns a repository failure into what the API reports: a named
// not-found for missing rows, otherwise a generic operation failure.
func storeError(err error, resource, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(resource)
	}
	return domain.Operation(message, err)
}
