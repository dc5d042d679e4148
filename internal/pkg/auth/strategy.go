package auth

import (
	"time"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

// Identity is what a valid token proves about its bearer.
type Identity struct {
	UserID int64
	Role   model.Role
}

type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
