package facility

import "errors"

var (
	ErrFacilityNotFound  = errors.New("facility not found")
	ErrNotFacilityOwner  = errors.New("you can only manage your own facilities")
	ErrOnlyOwnersAllowed = errors.New("only facility owners can create facilities")
)
