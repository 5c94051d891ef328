package statemachine

import (
	"food-marketplace-api/errs"
	"food-marketplace-api/models"
)

// Actor identifies which side of the marketplace is requesting a transition.
type Actor string

const (
	ActorCourier    Actor = "courier"
	ActorRestaurant Actor = "restaurant"
	ActorAdmin      Actor = "admin"
)

// Transition defines a valid state change and who can perform it.
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

// validTransitions is the authoritative state machine definition. Both the
// restaurant-accept path and the courier claim/advance path validate here,
// so there is exactly one legal writer per transition.
var validTransitions = []Transition{
	// Restaurant accepts a freshly placed order
	{From: models.StatusPending, To: models.StatusAccepted, Actor: ActorRestaurant},
	// Courier claims an unassigned order
	{From: models.StatusPending, To: models.StatusAccepted, Actor: ActorCourier},
	// Assigned courier advances the delivery
	{From: models.StatusAccepted, To: models.StatusPickedUp, Actor: ActorCourier},
	{From: models.StatusPickedUp, To: models.StatusDelivered, Actor: ActorCourier},
}

// statusOrder ranks statuses along the lifecycle; advances must move
// strictly forward through this sequence.
var statusOrder = []models.OrderStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusPickedUp,
	models.StatusDelivered,
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsValid reports whether s is a recognized order status.
func IsValid(s models.OrderStatus) bool {
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Rank returns the position of s in the lifecycle sequence, or -1 for an
// unrecognized status.
func Rank(s models.OrderStatus) int {
	for i, known := range statusOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transitions are possible from s.
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered
}

// CanTransition checks whether the given actor may move an order from one
// status to another. Admins may force any recognized status.
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if !IsValid(to) {
		return errs.Validation("unknown order status %q", to)
	}
	if actor == ActorAdmin {
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errs.Conflict("invalid transition %s → %s for actor %q; valid next states from %s: %s",
		from, to, actor, from, describeValidFrom(from, actor))
}

// ValidTransitionsFrom returns all statuses any actor can reach from the
// given status.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

func describeValidFrom(status models.OrderStatus, actor Actor) string {
	result := ""
	for _, t := range validTransitions {
		if t.From != status || t.Actor != actor {
			continue
		}
		if result != "" {
			result += ", "
		}
		result += string(t.To)
	}
	if result == "" {
		return "none (terminal state)"
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation.
func GetAllTransitions() []Transition {
	return validTransitions
}
