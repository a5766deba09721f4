package broker

import (
	"context"
	"errors"
	"testing"
)

type recordingSink struct {
	events []string
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event string, _ interface{}) error {
	s.events = append(s.events, event)
	return s.err
}

func TestFanoutReachesEverySink(t *testing.T) {
	failing := &recordingSink{err: errors.New("broker down")}
	ok := &recordingSink{}
	f := Fanout{failing, nil, ok}

	err := f.Publish(context.Background(), "booking.created", nil)
	if err == nil || !errors.Is(err, failing.err) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.events) != 1 || len(failing.events) != 1 {
		t.Fatalf("every sink should receive the event: %v %v", ok.events, failing.events)
	}
}
