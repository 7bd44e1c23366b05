package cats

import (
	"context"
	"errors"
)

// OwnerOf exposes the owner of a cat without handing out the full profile.
// Record and insurance handlers use it to resolve transitive ownership
// without importing this package's internals. A missing cat is reported via
// the found flag; the error is reserved for store failures.
func (s *Service) OwnerOf(ctx context.Context, catID string) (ownerID string, found bool, err error) {
	c, err := s.GetByID(ctx, catID)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.OwnerUserID, true, nil
}
