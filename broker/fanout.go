package broker

import (
	"context"
	"errors"
)

// EventSink is anything that accepts a named event.
type EventSink interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// Fanout publishes every event to all sinks and joins their errors.
type Fanout []EventSink

func (f Fanout) Publish(ctx context.Context, event string, payload interface{}) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
