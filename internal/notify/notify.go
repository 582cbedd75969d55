// Package notify is the outbound event seam for review decisions. The
// review transaction publishes and moves on; delivery is best effort
// and a failing channel can never fail or block the transition.
package notify

import (
	"context"
	"log"
	"time"
)

type Event struct {
	ProofID     string
	ListingID   string
	RequesterID string
	Approved    bool
	Reason      string
}

type Notifier interface {
	ProofReviewed(ctx context.Context, ev Event) error
}

// Dispatch delivers on its own goroutine. Errors are logged, never
// returned.
func Dispatch(n Notifier, ev Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.ProofReviewed(ctx, ev); err != nil {
			log.Printf("notify: proof %s: %v", ev.ProofID, err)
		}
	}()
}

// LogNotifier writes review outcomes to the log. Stands in for a real
// delivery channel (email, SMS) behind the same interface.
type LogNotifier struct{}

func (LogNotifier) ProofReviewed(_ context.Context, ev Event) error {
	outcome := "rejected"
	if ev.Approved {
		outcome = "approved"
	}
	log.Printf("notify: proof %s for listing %s %s (requester %s)", ev.ProofID, ev.ListingID, outcome, ev.RequesterID)
	return nil
}
