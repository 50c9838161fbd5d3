package crmsync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
	"github.com/sevaconnect/booking-api/internal/service/sequence"
	"github.com/sevaconnect/booking-api/pkg/metrics"
)

// Placeholder values for records minted by the reconciler. The CRM schema
// requires them; administrative staff fill in the real values later.
const (
	defaultGender         = "M"
	defaultFee            = 500.00
	defaultDepartment     = "General Medicine"
	defaultSpecialization = "General Physician"

	// minDurationMinutes covers reversed or zero-length slot inputs.
	minDurationMinutes = 30
)

// Service reconciles loosely-identified local patients and doctors against
// the CRM store and creates appointment rows there. It is the single place
// sync failure is absorbed: SyncAppointment never returns an error, only a
// SyncResult, so a CRM outage can never fail a booking.
type Service struct {
	patients     repository.CRMPatientRepository
	doctors      repository.CRMDoctorRepository
	appointments repository.CRMAppointmentRepository

	patientCodes     *sequence.Generator
	appointmentCodes *sequence.Generator

	hospitalID  uuid.UUID
	callTimeout time.Duration
	metrics     *metrics.Metrics
}

func NewService(
	patients repository.CRMPatientRepository,
	doctors repository.CRMDoctorRepository,
	appointments repository.CRMAppointmentRepository,
	hospitalID uuid.UUID,
	callTimeout time.Duration,
	m *metrics.Metrics,
) *Service {
	return &Service{
		patients:         patients,
		doctors:          doctors,
		appointments:     appointments,
		patientCodes:     sequence.NewGenerator(sequence.KindPatient, patients),
		appointmentCodes: sequence.NewGenerator(sequence.KindAppointment, appointments),
		hospitalID:       hospitalID,
		callTimeout:      callTimeout,
		metrics:          m,
	}
}

// SyncAppointment runs one end-to-end sync: reconcile patient, reconcile
// doctor, mint an appointment code, map the status and insert the CRM row.
// Steps are strictly sequential; each store call is bounded by the configured
// call timeout, and a timeout counts as a sync failure like any other.
func (s *Service) SyncAppointment(ctx context.Context, data *model.AppointmentSync) model.SyncResult {
	start := time.Now()
	s.metrics.SyncAttempts.Inc()

	result := s.sync(ctx, data)

	s.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	if !result.Synced {
		s.metrics.SyncFailures.Inc()
		log.Error().
			Str("patient", data.Patient.Name).
			Str("doctor", data.Doctor.Name).
			Str("reason", result.FailureReason).
			Msg("crm sync failed")
	}
	return result
}

func (s *Service) sync(ctx context.Context, data *model.AppointmentSync) model.SyncResult {
	patient, err := s.findOrCreatePatient(ctx, &data.Patient)
	if err != nil {
		return model.SyncFailed(fmt.Sprintf("patient reconciliation: %v", err))
	}

	doctor, err := s.findOrCreateDoctor(ctx, &data.Doctor)
	if err != nil {
		return model.SyncFailed(fmt.Sprintf("doctor reconciliation: %v", err))
	}

	code := s.nextAppointmentCode(ctx)

	appointment := &model.CRMAppointment{
		AppointmentCode: code,
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentType: model.AppointmentTypeConsultation,
		Status:          MapStatus(data.Status),
		ScheduledAt:     data.StartTime,
		DurationMinutes: durationMinutes(data.StartTime, data.EndTime),
		HospitalID:      s.hospitalID,
		Source:          model.AppointmentSource,
	}

	if err := s.createAppointment(ctx, appointment); err != nil {
		return model.SyncFailed(fmt.Sprintf("appointment insert: %v", err))
	}

	log.Info().
		Str("appointment_code", code).
		Str("patient_code", patient.PatientCode).
		Str("doctor", doctor.Name).
		Msg("crm sync complete")

	return model.SyncSucceeded(code)
}

// findOrCreatePatient matches by phone first, then email, both scoped to the
// hospital. With neither key present it creates immediately. Creation
// failure is fatal to the sync.
func (s *Service) findOrCreatePatient(ctx context.Context, local *model.LocalPatient) (*model.CRMPatient, error) {
	if local.Phone != "" {
		patient, err := s.findPatientByPhone(ctx, local.Phone)
		if err == nil {
			return patient, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up patient by phone: %w", err)
		}
	}

	if local.Email != "" {
		patient, err := s.findPatientByEmail(ctx, local.Email)
		if err == nil {
			return patient, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up patient by email: %w", err)
		}
	}

	return s.createPatient(ctx, local)
}

func (s *Service) createPatient(ctx context.Context, local *model.LocalPatient) (*model.CRMPatient, error) {
	firstName, lastName := splitName(local.Name)

	patient := &model.CRMPatient{
		PatientCode: s.nextPatientCode(ctx),
		FirstName:   firstName,
		LastName:    lastName,
		Phone:       optional(local.Phone),
		Email:       optional(local.Email),
		Gender:      defaultGender,
		HospitalID:  s.hospitalID,
		IsActive:    true,
		// Confirmation is an admin workflow on the CRM side.
		IsConfirmed: false,
	}

	cctx, cancel := s.callContext(ctx)
	defer cancel()
	if err := s.patients.Create(cctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create CRM patient: %w", err)
	}

	log.Info().
		Str("patient_code", patient.PatientCode).
		Str("name", local.Name).
		Msg("created CRM patient")

	return patient, nil
}

// findOrCreateDoctor matches by known CRM id first, then exact name. Unknown
// doctors get a placeholder row with default fee and department so the
// appointment has something to hang off.
func (s *Service) findOrCreateDoctor(ctx context.Context, local *model.LocalDoctor) (*model.CRMDoctor, error) {
	if local.CRMID != "" {
		if id, parseErr := uuid.Parse(local.CRMID); parseErr == nil {
			doctor, err := s.getDoctor(ctx, id)
			if err == nil {
				return doctor, nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("failed to look up doctor by CRM id: %w", err)
			}
		}
	}

	doctor, err := s.findDoctorByName(ctx, local.Name)
	if err == nil {
		return doctor, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up doctor by name: %w", err)
	}

	return s.createDoctor(ctx, local)
}

func (s *Service) createDoctor(ctx context.Context, local *model.LocalDoctor) (*model.CRMDoctor, error) {
	department := defaultDepartment
	specialization := defaultSpecialization
	if local.Specialty != "" {
		department = local.Specialty
		specialization = local.Specialty
	}

	doctor := &model.CRMDoctor{
		Name:           local.Name,
		Department:     &department,
		Specialization: &specialization,
		Fee:            defaultFee,
		Phone:          optional(local.Phone),
		Email:          optional(local.Email),
		HospitalID:     s.hospitalID,
		IsActive:       true,
	}

	cctx, cancel := s.callContext(ctx)
	defer cancel()
	if err := s.doctors.Create(cctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create CRM doctor: %w", err)
	}

	log.Info().Str("name", local.Name).Msg("created placeholder CRM doctor")

	return doctor, nil
}

func (s *Service) findPatientByPhone(ctx context.Context, phone string) (*model.CRMPatient, error) {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.patients.FindByPhone(cctx, s.hospitalID, phone)
}

func (s *Service) findPatientByEmail(ctx context.Context, email string) (*model.CRMPatient, error) {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.patients.FindByEmail(cctx, s.hospitalID, email)
}

func (s *Service) getDoctor(ctx context.Context, id uuid.UUID) (*model.CRMDoctor, error) {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.doctors.Get(cctx, s.hospitalID, id)
}

func (s *Service) findDoctorByName(ctx context.Context, name string) (*model.CRMDoctor, error) {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.doctors.FindByName(cctx, s.hospitalID, name)
}

func (s *Service) nextPatientCode(ctx context.Context) string {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.patientCodes.Next(cctx, time.Now())
}

func (s *Service) nextAppointmentCode(ctx context.Context) string {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.appointmentCodes.Next(cctx, time.Now())
}

func (s *Service) createAppointment(ctx context.Context, appointment *model.CRMAppointment) error {
	cctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.appointments.Create(cctx, appointment)
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

// splitName takes the first whitespace-delimited token as the first name and
// joins the rest as the last name. Single-token names get an empty last name.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// durationMinutes rounds the slot length to the nearest whole minute,
// clamping to the minimum when the result is zero or negative.
func durationMinutes(start, end time.Time) int {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes <= 0 {
		return minDurationMinutes
	}
	return minutes
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
