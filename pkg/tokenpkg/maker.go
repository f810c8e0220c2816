package tokenpkg

import (
	"time"

	"github.com/corebank/corebank/internal/domain"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username, role and duration.
	CreateToken(username string, role domain.Role, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}
