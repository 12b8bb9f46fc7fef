package payment

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadySettled   = errors.New("payment is already settled")
	ErrNotRefundable    = errors.New("only paid payments can be refunded")
	ErrNotPaymentParty  = errors.New("you are not a party to this payment")
	ErrMissingReference = errors.New("payment must reference a booking or a rental")
	ErrBadSignature     = errors.New("webhook signature mismatch")
)
