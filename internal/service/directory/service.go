package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
)

const doctorsCacheKey = "doctors"

// Service exposes the CRM doctor directory to booking surfaces and the
// per-doctor appointment listing behind the dashboard. The directory changes
// rarely, so reads are cached.
type Service struct {
	doctors      repository.CRMDoctorRepository
	appointments repository.CRMAppointmentRepository
	cache        *cache.Cache
	hospitalID   uuid.UUID
}

func NewService(
	doctors repository.CRMDoctorRepository,
	appointments repository.CRMAppointmentRepository,
	hospitalID uuid.UUID,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		doctors:      doctors,
		appointments: appointments,
		cache:        cache.New(cacheTTL, 2*cacheTTL),
		hospitalID:   hospitalID,
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.CRMDoctor, error) {
	if cached, ok := s.cache.Get(doctorsCacheKey); ok {
		return cached.([]*model.CRMDoctor), nil
	}

	doctors, err := s.doctors.List(ctx, s.hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set(doctorsCacheKey, doctors, cache.DefaultExpiration)
	return doctors, nil
}

func (s *Service) DoctorAppointments(ctx context.Context, doctorID uuid.UUID) ([]*model.CRMAppointment, error) {
	appointments, err := s.appointments.ListForDoctor(ctx, s.hospitalID, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}
