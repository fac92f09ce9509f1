package compute_project_availability

import (
	"context"

	computeProjectAvailability "github.com/inkline/INK-AvailabilityService/internal/usecase/compute_project_availability"
)

type ComputeProjectAvailabilityUseCase interface {
	Execute(ctx context.Context, req *computeProjectAvailability.Request) (*computeProjectAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
