// Package session provides the server-side session store keyed by the
// session cookie. Sessions carry a fixed TTL measured from creation;
// activity never extends them.
package session

import (
	"context"
	"errors"

	"gigbook/pkg/model"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, sess *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Destroy(ctx context.Context, id string) error
	Stop() // Stop background workers and release resources
}
