package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
	"github.com/sevaconnect/booking-api/internal/service/crmsync"
	"github.com/sevaconnect/booking-api/internal/service/notification"
)

var ErrUnknownDoctor = errors.New("unknown doctor")

const defaultSlotLength = 30 * time.Minute

// Service runs the booking flows. A booking always succeeds once its input
// validates; whether the CRM sync caught up is reported separately so the
// surface can tell the user "recorded, hospital system pending".
type Service struct {
	sync       *crmsync.Service
	notifier   notification.Service
	doctors    repository.CRMDoctorRepository
	hospitalID uuid.UUID
}

func NewService(
	sync *crmsync.Service,
	notifier notification.Service,
	doctors repository.CRMDoctorRepository,
	hospitalID uuid.UUID,
) *Service {
	return &Service{
		sync:       sync,
		notifier:   notifier,
		doctors:    doctors,
		hospitalID: hospitalID,
	}
}

// Book handles the direct booking surface.
func (s *Service) Book(ctx context.Context, req *model.CreateBookingRequest) *model.BookingResponse {
	endTime := req.EndTime
	if endTime.IsZero() {
		endTime = req.StartTime.Add(defaultSlotLength)
	}

	data := &model.AppointmentSync{
		Patient: model.LocalPatient{
			Name:  req.PatientName,
			Email: req.PatientEmail,
			Phone: req.PatientPhone,
		},
		Doctor: model.LocalDoctor{
			Name:      req.DoctorName,
			Specialty: req.Specialty,
			CRMID:     req.DoctorCRMID,
		},
		StartTime: req.StartTime,
		EndTime:   endTime,
		Status:    req.Status,
	}

	result := s.sync.SyncAppointment(ctx, data)

	if req.PatientPhone != "" {
		// Best-effort confirmation; delivery failure never surfaces.
		s.notifier.Send(ctx, &model.Notification{
			To:      req.PatientPhone,
			Message: fmt.Sprintf("[Seva-Connect] Appointment with %s at %s", req.DoctorName, req.StartTime.Format(time.RFC1123)),
			Channel: model.ChannelSMS,
		})
	}

	return bookingResponse(result)
}

// BookExternal handles the API-key-guarded partner surface. The partner only
// knows the doctor's CRM id, so the doctor row is resolved up front; an id
// the CRM has never seen is a caller error, not a sync failure.
func (s *Service) BookExternal(ctx context.Context, req *model.ExternalBookingRequest) (*model.BookingResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorCRMID)
	if err != nil {
		return nil, ErrUnknownDoctor
	}

	doctor, err := s.doctors.Get(ctx, s.hospitalID, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownDoctor
		}
		return nil, fmt.Errorf("failed to resolve doctor: %w", err)
	}

	data := &model.AppointmentSync{
		Patient: model.LocalPatient{
			Name:  req.PatientName,
			Phone: req.PatientPhone,
		},
		Doctor: model.LocalDoctor{
			Name:  doctor.Name,
			CRMID: doctor.ID.String(),
		},
		StartTime: req.SlotTime,
		EndTime:   req.SlotTime.Add(defaultSlotLength),
		Status:    "scheduled",
	}

	result := s.sync.SyncAppointment(ctx, data)

	if doctor.Phone != nil {
		s.notifier.Send(ctx, &model.Notification{
			To:      *doctor.Phone,
			Message: fmt.Sprintf("[Seva-Connect] External Booking: %s @ %s", req.PatientName, req.SlotTime.Format(time.RFC1123)),
			Channel: model.ChannelWhatsApp,
		})
	}

	return bookingResponse(result), nil
}

func bookingResponse(result model.SyncResult) *model.BookingResponse {
	message := "Appointment scheduled"
	if !result.Synced {
		message = "Appointment recorded; hospital system sync pending"
	}
	return &model.BookingResponse{
		AppointmentCode: result.Code(),
		Synced:          result.Synced,
		Message:         message,
	}
}
