package checkers

import (
	"context"
	"time"

	"github.com/ogaworks/taskboard/pkg/session"
)

type SessionStoreChecker struct {
	store session.Store
}

func NewSessionStoreChecker(store session.Store) *SessionStoreChecker {
	return &SessionStoreChecker{store: store}
}

func (c *SessionStoreChecker) Name() string { return "session_store" }

func (c *SessionStoreChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.store.Ping(ctx)
}
