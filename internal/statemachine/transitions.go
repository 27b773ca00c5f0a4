package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seatwise/floor-service/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// forwardChain is the ordered dining lifecycle once a booking is created.
// Each status may advance only to its direct successor.
var forwardChain = []models.DiningStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusArrived,
	models.StatusSeated,
	models.StatusOrdered,
	models.StatusAppetizers,
	models.StatusMainCourse,
	models.StatusDessert,
	models.StatusPayment,
	models.StatusCompleted,
}

// branches are the side exits reachable from any non-terminal status.
var branches = []models.DiningStatus{
	models.StatusNoShow,
	models.StatusCancelledByUser,
	models.StatusCancelledByRestaurant,
}

var successorOf = func() map[models.DiningStatus]models.DiningStatus {
	m := make(map[models.DiningStatus]models.DiningStatus, len(forwardChain)-1)
	for i := 0; i < len(forwardChain)-1; i++ {
		m[forwardChain[i]] = forwardChain[i+1]
	}
	return m
}()

// ValidTransitionsFrom returns every status reachable from the given one.
// Terminal statuses have none.
func ValidTransitionsFrom(from models.DiningStatus) []models.DiningStatus {
	if from.IsTerminal() {
		return nil
	}
	var nexts []models.DiningStatus
	if next, ok := successorOf[from]; ok {
		nexts = append(nexts, next)
	}
	nexts = append(nexts, branches...)
	return nexts
}

// CanTransition reports whether a booking may move from one status to another.
// The error message names the valid successors so handlers can surface it
// directly as a validation failure.
func CanTransition(from, to models.DiningStatus) error {
	if !from.Valid() || !to.Valid() {
		return ErrInvalidTransition
	}
	for _, next := range ValidTransitionsFrom(from) {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s (valid from %s: %s)",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(from models.DiningStatus) string {
	nexts := ValidTransitionsFrom(from)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
