package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

var (
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrStatusTransition = errors.New("order status transition not allowed")
)

// ParseStatus maps a request string to an OrderStatus.
func ParseStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}

// CanTransition allows pending orders to move to completed or cancelled.
// Setting the current status again is a no-op and allowed.
func CanTransition(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	if from == models.OrderStatusPending &&
		(to == models.OrderStatusCompleted || to == models.OrderStatusCancelled) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrStatusTransition, from, to)
}
