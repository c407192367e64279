package user

import "context"

// UserRepository is the read-only slice of the user store the attendance
// engine needs; account management is an external collaborator.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
}
