package testutil

import (
	"context"

	"github.com/skinrally/backend/internal/domain/notification/event"
)

// MockNotifier records emitted events instead of publishing them.
type MockNotifier struct {
	EmitFunc func(ctx context.Context, ev *event.EventRequest) error

	Events []*event.EventRequest
}

func (n *MockNotifier) Emit(ctx context.Context, ev *event.EventRequest) error {
	if n.EmitFunc != nil {
		return n.EmitFunc(ctx, ev)
	}

	n.Events = append(n.Events, ev)
	return nil
}
