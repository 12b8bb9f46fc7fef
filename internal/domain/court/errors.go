package court

import "errors"

var (
	ErrCourtNotFound    = errors.New("court not found")
	ErrNotFacilityOwner = errors.New("you can only manage courts of your own facilities")
	ErrInvalidHours     = errors.New("open_hour must be before close_hour")
)
