// Package tokenpkg provides token makers to resolve the current caller.
package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/corebank/internal/domain"
)

var (
	// ErrInvalidToken indicates that the token is invalid.
	ErrInvalidToken = errors.New("token is invalid")
	// ErrExpiredToken indicates that the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// Payload contains the payload data of the token.
//
// Username identifies the account owner; Role carries the capability set
// checked at the start of guarded operations.
type Payload struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	IssuedAt  time.Time   `json:"issued_at"`
	ExpiredAt time.Time   `json:"expired_at"`
}

// NewPayload creates a new token payload with a specific username, role and duration.
func NewPayload(username string, role domain.Role, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		ID:        tokenID,
		Username:  username,
		Role:      role,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	return payload, nil
}

// Valid checks if the token payload is expired.
func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}
