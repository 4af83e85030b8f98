package user

import (
	"errors"

	"github.com/google/uuid"
)

var ErrEmptyUsername = errors.New("username cannot be empty")

// Identity is the authenticated caller, resolved from token claims and
// the identity service. User records themselves live outside this
// service.
type Identity struct {
	id       uuid.UUID
	username string
	role     Role
}

func NewIdentity(id uuid.UUID, username string, role Role) (*Identity, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Identity{id: id, username: username, role: role}, nil
}

func (i *Identity) ID() uuid.UUID    { return i.id }
func (i *Identity) Username() string { return i.username }
func (i *Identity) Role() Role       { return i.role }

func (i *Identity) IsAdmin() bool {
	return i.role == RoleAdmin
}
