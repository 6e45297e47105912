package usecase

import (
	"context"

	"github.com/google/uuid"
)

// PaymentGateway answers whether a lesson's payment has been captured.
// The booking flow only consults it when the payment gate is enabled.
type PaymentGateway interface {
	IsConfirmed(ctx context.Context, lessonID uuid.UUID) (bool, error)
}

// SimulatedGateway confirms every payment. Stand-in for a real gateway
// integration, same as the dummy capture step in the payment flow.
type SimulatedGateway struct{}

func (SimulatedGateway) IsConfirmed(ctx context.Context, lessonID uuid.UUID) (bool, error) {
	return true, nil
}
