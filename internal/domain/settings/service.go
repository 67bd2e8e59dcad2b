package settings

import (
	"context"
	"strings"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	settings Repository
}

func NewService(settings Repository) *Service {
	return &Service{settings: settings}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.settings.Get(ctx)
}

func (s *Service) Update(ctx context.Context, in *Settings) error {
	if strings.TrimSpace(in.ClinicName) == "" {
		return validate.Errorf("clinic_name is required")
	}
	if strings.TrimSpace(in.Currency) == "" {
		return validate.Errorf("currency is required")
	}
	if in.AppointmentDurationMinutes <= 0 {
		return validate.Errorf("appointment_duration_minutes must be positive")
	}
	return s.settings.Save(ctx, in)
}
