package book_project

import (
	"context"

	bookProject "github.com/inkline/INK-AvailabilityService/internal/usecase/book_project"
)

type BookProjectUseCase interface {
	Execute(ctx context.Context, req *bookProject.Request) (*bookProject.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
