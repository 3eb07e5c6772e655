package platform

import (
	"context"
	"errors"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// Fanout announces through every wrapped announcer. Delivery continues past a
// failing announcer; the errors are joined.
type Fanout []Announcer

// Broadcast sends a message through every announcer
func (f Fanout) Broadcast(ctx context.Context, message string) error {
	return f.each(func(a Announcer) error { return a.Broadcast(ctx, message) })
}

// Title shows a title through every announcer
func (f Fanout) Title(ctx context.Context, title, subtitle string) error {
	return f.each(func(a Announcer) error { return a.Title(ctx, title, subtitle) })
}

// Tell sends a private message through every announcer
func (f Fanout) Tell(ctx context.Context, id models.ParticipantID, message string) error {
	return f.each(func(a Announcer) error { return a.Tell(ctx, id, message) })
}

// Firework launches a burst through every announcer
func (f Fanout) Firework(ctx context.Context, id models.ParticipantID) error {
	return f.each(func(a Announcer) error { return a.Firework(ctx, id) })
}

func (f Fanout) each(fn func(Announcer) error) error {
	var errs []error
	for _, a := range f {
		if a == nil {
			continue
		}
		if err := fn(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
