// AngelaMos | 2026
// service.go

package driver

import (
	"context"
	"log/slog"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Driver, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req DriverRequest) (*Driver, error) {
	req.Normalize()
	d := req.ToDriver()

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "driver created", "driver_id", d.ID)
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, req DriverRequest) error {
	req.Normalize()
	return s.repo.Update(ctx, id, req.ToDriver())
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "driver deleted", "driver_id", id)
	return nil
}

// Search treats any type other than "name" as a license search. An empty
// value matches every driver.
func (s *Service) Search(ctx context.Context, by, value string) ([]Driver, error) {
	if by != SearchByName {
		by = SearchByLicense
	}
	return s.repo.Search(ctx, by, strings.TrimSpace(value))
}
