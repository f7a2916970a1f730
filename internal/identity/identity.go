package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dsaintel/dsaiq/internal/store"
)

// Key is the settings key holding the learner's user id.
const Key = "dsa_user_id"

var ErrEmpty = errors.New("user id must not be blank")

// Provider resolves the current learner identity. The returned id is trimmed;
// "" means no identity is available.
type Provider interface {
	UserID(ctx context.Context) (string, error)
}

// StoreProvider reads the identity from the settings table.
type StoreProvider struct {
	Repo store.SettingsRepo
}

func (p StoreProvider) UserID(ctx context.Context) (string, error) {
	v, ok, err := p.Repo.Get(ctx, Key)
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(v), nil
}

// Static always returns the same id.
type Static string

func (s Static) UserID(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}

// Override prefers a fixed id, such as one passed on the command line, and
// falls back to Inner when it is blank.
type Override struct {
	ID    string
	Inner Provider
}

func (o Override) UserID(ctx context.Context) (string, error) {
	if id := strings.TrimSpace(o.ID); id != "" {
		return id, nil
	}
	if o.Inner == nil {
		return "", nil
	}
	return o.Inner.UserID(ctx)
}

// Save stores id as the learner identity.
func Save(ctx context.Context, repo store.SettingsRepo, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmpty
	}
	if err := repo.Set(ctx, Key, id); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// Clear removes the stored identity.
func Clear(ctx context.Context, repo store.SettingsRepo) error {
	if err := repo.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}
