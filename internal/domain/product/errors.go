package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrNotFacilityOwner = errors.New("you can only manage products of your own facilities")
)
