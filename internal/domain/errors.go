package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrRequestNotFound        = errors.New("request not found")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrManagerNotFound        = errors.New("manager user not found")
	ErrRequestAlreadyResolved = errors.New("request is already accepted or rejected")
	ErrUnsupportedRequestType = errors.New("unsupported request type")
	ErrActorRequired          = errors.New("acting user id is required")
)
