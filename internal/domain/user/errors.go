package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNotInDepartment         = errors.New("user is not a member of this department")
	ErrIdentityMissing         = errors.New("identity missing from request context")
	ErrInvalidDirectory        = errors.New("invalid identity directory")
)
