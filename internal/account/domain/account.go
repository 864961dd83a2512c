package domain

import (
	"fmt"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
)

type ID string

// Kind selects which account collection an operation targets.
type Kind string

const (
	KindPoster    Kind = "poster"
	KindResponder Kind = "responder"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindPoster, KindResponder:
		return Kind(s), true
	default:
		return "", false
	}
}

func (k Kind) Table() string {
	return string(k) + "s"
}

// UsernameRule and SecretRule return the validator tags applied to each
// kind. Responders carry length minimums, posters only presence.
func (k Kind) UsernameRule() string {
	if k == KindResponder {
		return fmt.Sprintf("required,min=%d", constants.ResponderUsernameMinLength)
	}
	return "required"
}

func (k Kind) SecretRule() string {
	if k == KindResponder {
		return fmt.Sprintf("required,min=%d,max=%d", constants.ResponderSecretMinLength, constants.SecretMaxLength)
	}
	return fmt.Sprintf("required,max=%d", constants.SecretMaxLength)
}

type Account struct {
	ID         ID
	Kind       Kind
	Username   string
	Email      string
	SecretHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Public is the only account shape that leaves the service layer.
type Public struct {
	ID        ID        `json:"id"`
	Kind      Kind      `json:"kind"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a Account) Public() Public {
	return Public{
		ID:        a.ID,
		Kind:      a.Kind,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Changes is a partial update; nil fields are left untouched.
type Changes struct {
	Username   *string
	Email      *string
	SecretHash *string
	UpdatedAt  time.Time
}
