package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrHRAccessRequired = errors.New("HR or admin access required")
)
