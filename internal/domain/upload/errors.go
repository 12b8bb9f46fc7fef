package upload

import "errors"

var (
	ErrUploadNotFound     = errors.New("upload not found")
	ErrNotUploadOwner     = errors.New("you are not the owner of this upload")
	ErrUnsupportedType    = errors.New("unsupported content type")
	ErrPresignUnavailable = errors.New("storage presigning unavailable")
)
