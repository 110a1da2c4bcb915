// AngelaMos | 2026
// service.go

package vehicle

import (
	"context"
	"log/slog"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]ListedVehicle, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*ListedVehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req VehicleRequest) (*Vehicle, error) {
	req.Normalize()
	v, err := req.ToVehicle()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "vehicle created",
		"vehicle_id", v.ID,
		"plate", v.LicensePlate,
	)
	return v, nil
}

func (s *Service) Update(ctx context.Context, id int64, req VehicleRequest) error {
	req.Normalize()
	v, err := req.ToVehicle()
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, id, v)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "vehicle deleted", "vehicle_id", id)
	return nil
}
