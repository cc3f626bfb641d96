package app

import (
	"context"
	"time"
)

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type PaceUseCase interface {
	GetWorkPace(ctx context.Context, req PaceRequest) (*PaceResponse, error)
}

type AvailabilityUseCase interface {
	DailyAvailability(ctx context.Context, from, to time.Time) ([]DayAvailability, error)
}
