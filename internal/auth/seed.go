package auth

import (
	"context"
	"fmt"
)

// UserWriter persists operator accounts.
type UserWriter interface {
	Upsert(ctx context.Context, u User) error
}

// Seed hashes the password and upserts the account. Used at startup to
// bootstrap operators from the environment.
func Seed(ctx context.Context, w UserWriter, username, displayName, password string) error {
	salt, hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: seed %s: %w", username, err)
	}
	return w.Upsert(ctx, User{
		Username:    username,
		DisplayName: displayName,
		Salt:        salt,
		Hash:        hash,
	})
}
