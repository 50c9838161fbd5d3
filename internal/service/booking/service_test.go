package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
	"github.com/sevaconnect/booking-api/internal/service/crmsync"
	"github.com/sevaconnect/booking-api/pkg/metrics"
)

type memPatientRepo struct {
	created []*model.CRMPatient
}

func (r *memPatientRepo) FindByPhone(_ context.Context, _ uuid.UUID, _ string) (*model.CRMPatient, error) {
	return nil, repository.ErrNotFound
}

func (r *memPatientRepo) FindByEmail(_ context.Context, _ uuid.UUID, _ string) (*model.CRMPatient, error) {
	return nil, repository.ErrNotFound
}

func (r *memPatientRepo) Create(_ context.Context, patient *model.CRMPatient) error {
	patient.ID = uuid.New()
	r.created = append(r.created, patient)
	return nil
}

func (r *memPatientRepo) LastCodeWithPrefix(_ context.Context, _ string) (string, error) {
	return "", nil
}

type memDoctorRepo struct {
	byID    map[uuid.UUID]*model.CRMDoctor
	created []*model.CRMDoctor
}

func (r *memDoctorRepo) Get(_ context.Context, _ uuid.UUID, id uuid.UUID) (*model.CRMDoctor, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memDoctorRepo) FindByName(_ context.Context, _ uuid.UUID, _ string) (*model.CRMDoctor, error) {
	return nil, repository.ErrNotFound
}

func (r *memDoctorRepo) Create(_ context.Context, doctor *model.CRMDoctor) error {
	doctor.ID = uuid.New()
	r.created = append(r.created, doctor)
	return nil
}

func (r *memDoctorRepo) List(_ context.Context, _ uuid.UUID) ([]*model.CRMDoctor, error) {
	return nil, nil
}

type memAppointmentRepo struct {
	created   []*model.CRMAppointment
	createErr error
}

func (r *memAppointmentRepo) Create(_ context.Context, appointment *model.CRMAppointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	appointment.ID = uuid.New()
	r.created = append(r.created, appointment)
	return nil
}

func (r *memAppointmentRepo) LastCodeWithPrefix(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (r *memAppointmentRepo) ListForDoctor(_ context.Context, _, _ uuid.UUID) ([]*model.CRMAppointment, error) {
	return nil, nil
}

type stubNotifier struct {
	sent []*model.Notification
}

func (s *stubNotifier) Send(_ context.Context, n *model.Notification) bool {
	s.sent = append(s.sent, n)
	return true
}

type fixture struct {
	service      *Service
	patients     *memPatientRepo
	doctors      *memDoctorRepo
	appointments *memAppointmentRepo
	notifier     *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patients := &memPatientRepo{}
	doctors := &memDoctorRepo{byID: map[uuid.UUID]*model.CRMDoctor{}}
	appointments := &memAppointmentRepo{}
	notifier := &stubNotifier{}
	hospitalID := uuid.New()

	syncSvc := crmsync.NewService(patients, doctors, appointments, hospitalID, 0, metrics.New("booking_test"))

	return &fixture{
		service:      NewService(syncSvc, notifier, doctors, hospitalID),
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		notifier:     notifier,
	}
}

func TestBook(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	resp := f.service.Book(context.Background(), &model.CreateBookingRequest{
		PatientName:  "Ravi Kumar",
		PatientPhone: "+919812345678",
		DoctorName:   "Dr. Meena Iyer",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Status:       "scheduled",
	})

	assert.True(t, resp.Synced)
	assert.Equal(t, "Appointment scheduled", resp.Message)
	assert.True(t, strings.HasPrefix(resp.AppointmentCode, "APT"))

	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, 60, f.appointments.created[0].DurationMinutes)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, model.ChannelSMS, f.notifier.sent[0].Channel)
	assert.Equal(t, "+919812345678", f.notifier.sent[0].To)
}

func TestBookDefaultsEndTime(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	resp := f.service.Book(context.Background(), &model.CreateBookingRequest{
		PatientName: "Ravi Kumar",
		DoctorName:  "Dr. Meena Iyer",
		StartTime:   start,
	})

	assert.True(t, resp.Synced)
	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, 30, f.appointments.created[0].DurationMinutes)
	assert.Empty(t, f.notifier.sent, "no phone means no confirmation")
}

func TestBookSyncFailureStillResponds(t *testing.T) {
	f := newFixture(t)
	f.appointments.createErr = errors.New("relation does not exist")
	start := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	resp := f.service.Book(context.Background(), &model.CreateBookingRequest{
		PatientName: "Ravi Kumar",
		DoctorName:  "Dr. Meena Iyer",
		StartTime:   start,
	})

	assert.False(t, resp.Synced)
	assert.Equal(t, model.SyncFailedSentinel, resp.AppointmentCode)
	assert.Equal(t, "Appointment recorded; hospital system sync pending", resp.Message)
}

func TestBookExternal(t *testing.T) {
	f := newFixture(t)
	phone := "+919899999999"
	doctor := &model.CRMDoctor{Base: model.Base{ID: uuid.New()}, Name: "Dr. Meena Iyer", Phone: &phone}
	f.doctors.byID[doctor.ID] = doctor

	resp, err := f.service.BookExternal(context.Background(), &model.ExternalBookingRequest{
		PatientName: "Ravi Kumar",
		DoctorCRMID: doctor.ID.String(),
		SlotTime:    time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.Synced)

	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, doctor.ID, f.appointments.created[0].DoctorID)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, model.ChannelWhatsApp, f.notifier.sent[0].Channel)
	assert.Equal(t, phone, f.notifier.sent[0].To)
}

func TestBookExternalMalformedDoctorID(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.BookExternal(context.Background(), &model.ExternalBookingRequest{
		PatientName: "Ravi Kumar",
		DoctorCRMID: "not-a-uuid",
		SlotTime:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestBookExternalUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.BookExternal(context.Background(), &model.ExternalBookingRequest{
		PatientName: "Ravi Kumar",
		DoctorCRMID: uuid.New().String(),
		SlotTime:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrUnknownDoctor)
}
