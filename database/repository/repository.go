// Package repository holds the sentinel errors and helpers shared by the
// entity repositories underneath it.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by repository operations. The service layer maps
// them onto its own error kinds.
var (
	// ErrNotFound means the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDayNotPublished means no availability record exists for the day.
	ErrDayNotPublished = errors.New("availability day not published")
	// ErrSlotTaken means the requested slot is not free.
	ErrSlotTaken = errors.New("slot not available")
	// ErrInsufficientStock means an inventory adjustment would go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsTransient reports whether an error is a transient infrastructure failure
// worth retrying: network hiccups, timeouts, or a Mongo transaction that lost
// an optimistic-concurrency race.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") ||
			ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return errors.Is(err, context.DeadlineExceeded)
}
