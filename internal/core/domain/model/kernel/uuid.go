package kernel

import (
	"fmt"

	"offroute/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromGoogle")

// UUID identifies events, trips, orders, incidents and staff members.
// The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses s and rejects the nil UUID.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return UUIDFromGoogle(id)
}

// UUIDFromGoogle wraps an already parsed identifier, typically read from a DTO.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Google returns the underlying google/uuid value for persistence.
func (u UUID) Google() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
