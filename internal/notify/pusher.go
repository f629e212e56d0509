package notify

import (
	"context"
	"errors"
)

// ErrTokenGone marks a push target the provider no longer recognizes. The
// dispatcher prunes the token and keeps going.
var ErrTokenGone = errors.New("push token no longer registered")

// Pusher delivers one push message to one device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

// NoopPusher is used when no push provider is configured.
type NoopPusher struct{}

func (NoopPusher) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}
