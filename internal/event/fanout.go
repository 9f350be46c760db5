package event

import (
	"context"

	"github.com/chibox/chibox-server/internal/logger"
)

// Fanout delivers events to a local bus first and then mirrors them to
// remote publishers. Mirror failures are logged and never reach the caller.
type Fanout struct {
	local   Bus
	mirrors []Publisher
}

// NewFanout creates a Fanout over local with optional mirrors
func NewFanout(local Bus, mirrors ...Publisher) *Fanout {
	return &Fanout{local: local, mirrors: mirrors}
}

// Publish sends the event to local subscribers, then to every mirror
func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	err := f.local.Publish(ctx, evt)
	for _, m := range f.mirrors {
		if merr := m.Publish(ctx, evt); merr != nil {
			logger.FromContext(ctx).Warn(LogMsgMirrorPublishFailed, "event_type", evt.Type, "error", merr)
		}
	}
	return err
}

// Subscribe registers handler on the local bus
func (f *Fanout) Subscribe(eventType Type, handler Handler) {
	f.local.Subscribe(eventType, handler)
}
