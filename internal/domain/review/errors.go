package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this facility")
	ErrNotReviewAuthor = errors.New("you are not the author of this review")
	ErrNoCompletedStay = errors.New("a completed booking is required before reviewing")
)
