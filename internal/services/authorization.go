package services

import "errors"

// ErrNotOwner is returned when a principal tries to mutate a resource they
// do not own.
var ErrNotOwner = errors.New("principal is not the resource owner")

// AuthorizeOwner checks that the acting principal owns the target resource.
// Every mutation on listings, profiles, and booking resolutions passes
// through here after authentication.
func AuthorizeOwner(principalID, resourceOwnerID uint64) error {
	if principalID != resourceOwnerID {
		return ErrNotOwner
	}
	return nil
}
