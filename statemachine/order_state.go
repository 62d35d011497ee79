package statemachine

import (
	"food-storefront/models"
)

// Step pairs a status with the milestone label shown to customers.
type Step struct {
	Status models.OrderStatus `json:"status"`
	Rank   int                `json:"rank"`
	Label  string             `json:"label"`
}

// sequence is the authoritative, totally ordered lifecycle.
var sequence = []Step{
	{Status: models.StatusPending, Rank: 0, Label: "Order Placed"},
	{Status: models.StatusConfirmed, Rank: 1, Label: "Restaurant Confirmed"},
	{Status: models.StatusPreparing, Rank: 2, Label: "Food Being Prepared"},
	{Status: models.StatusOnTheWay, Rank: 3, Label: "Out for Delivery"},
	{Status: models.StatusDelivered, Rank: 4, Label: "Delivered"},
}

var rankOf = func() map[models.OrderStatus]int {
	m := make(map[models.OrderStatus]int, len(sequence))
	for _, s := range sequence {
		m[s.Status] = s.Rank
	}
	return m
}()

// Sequence returns a copy of the lifecycle in rank order.
func Sequence() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence)
	return out
}

// Rank returns the position of status in the lifecycle.
func Rank(status models.OrderStatus) (int, bool) {
	r, ok := rankOf[status]
	return r, ok
}

func IsValid(status models.OrderStatus) bool {
	_, ok := rankOf[status]
	return ok
}

// IsTerminal reports whether status is the last state of the lifecycle.
func IsTerminal(status models.OrderStatus) bool {
	r, ok := rankOf[status]
	return ok && r == len(sequence)-1
}

// Next returns the status that follows the given one. The second result is
// false when status is terminal or unknown.
func Next(status models.OrderStatus) (models.OrderStatus, bool) {
	r, ok := rankOf[status]
	if !ok || r >= len(sequence)-1 {
		return "", false
	}
	return sequence[r+1].Status, true
}

// IsCancellable reports whether an order in this status may still be withdrawn.
func IsCancellable(status models.OrderStatus) bool {
	return status == models.StatusPending || status == models.StatusConfirmed
}

// CancellableStatuses lists the statuses accepted by IsCancellable.
func CancellableStatuses() []models.OrderStatus {
	return []models.OrderStatus{models.StatusPending, models.StatusConfirmed}
}

// Progress is the completion percentage shown on the tracking bar.
func Progress(status models.OrderStatus) int {
	r, ok := rankOf[status]
	if !ok {
		return 0
	}
	return (r + 1) * 100 / len(sequence)
}

// TrackingSteps builds the full milestone list for status from scratch.
// Every step whose rank is at or below the status rank is completed and
// stamped with stamp; the rest carry no time.
func TrackingSteps(status models.OrderStatus, stamp string) []models.TrackingStep {
	target, ok := rankOf[status]
	if !ok {
		target = -1
	}
	steps := make([]models.TrackingStep, len(sequence))
	for i, s := range sequence {
		steps[i] = models.TrackingStep{Step: s.Label}
		if s.Rank <= target {
			steps[i].Completed = true
			steps[i].Time = stamp
		}
	}
	return steps
}
