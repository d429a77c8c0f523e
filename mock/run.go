package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var _ devdocs.RunService = (*RunService)(nil)

// RunService is a mock implementation of devdocs.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *devdocs.Run) error
	FinishRunFn   func(ctx context.Context, id string, upd devdocs.RunUpdate) (*devdocs.Run, error)
	CreateFetchFn func(ctx context.Context, fetch *devdocs.Fetch) error
	LastRunFn     func(ctx context.Context, filter devdocs.RunFilter) (*devdocs.Run, error)
	FindFetchesFn func(ctx context.Context, filter devdocs.FetchFilter) ([]*devdocs.Fetch, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *devdocs.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, upd devdocs.RunUpdate) (*devdocs.Run, error) {
	return s.FinishRunFn(ctx, id, upd)
}

func (s *RunService) CreateFetch(ctx context.Context, fetch *devdocs.Fetch) error {
	return s.CreateFetchFn(ctx, fetch)
}

func (s *RunService) LastRun(ctx context.Context, filter devdocs.RunFilter) (*devdocs.Run, error) {
	return s.LastRunFn(ctx, filter)
}

func (s *RunService) FindFetches(ctx context.Context, filter devdocs.FetchFilter) ([]*devdocs.Fetch, error) {
	return s.FindFetchesFn(ctx, filter)
}
