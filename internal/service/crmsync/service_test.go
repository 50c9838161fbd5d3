package crmsync

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
	"github.com/sevaconnect/booking-api/pkg/metrics"
)

type fakePatientRepo struct {
	byPhone   map[string]*model.CRMPatient
	byEmail   map[string]*model.CRMPatient
	created   []*model.CRMPatient
	lookupErr error
	createErr error
	lastCode  string
}

func (r *fakePatientRepo) FindByPhone(_ context.Context, _ uuid.UUID, phone string) (*model.CRMPatient, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if p, ok := r.byPhone[phone]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePatientRepo) FindByEmail(_ context.Context, _ uuid.UUID, email string) (*model.CRMPatient, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if p, ok := r.byEmail[email]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePatientRepo) Create(_ context.Context, patient *model.CRMPatient) error {
	if r.createErr != nil {
		return r.createErr
	}
	patient.ID = uuid.New()
	r.created = append(r.created, patient)
	r.lastCode = patient.PatientCode
	return nil
}

func (r *fakePatientRepo) LastCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	if strings.HasPrefix(r.lastCode, prefix) {
		return r.lastCode, nil
	}
	return "", nil
}

type fakeDoctorRepo struct {
	byID      map[uuid.UUID]*model.CRMDoctor
	byName    map[string]*model.CRMDoctor
	created   []*model.CRMDoctor
	createErr error
}

func (r *fakeDoctorRepo) Get(_ context.Context, _ uuid.UUID, id uuid.UUID) (*model.CRMDoctor, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) FindByName(_ context.Context, _ uuid.UUID, name string) (*model.CRMDoctor, error) {
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *model.CRMDoctor) error {
	if r.createErr != nil {
		return r.createErr
	}
	doctor.ID = uuid.New()
	r.created = append(r.created, doctor)
	return nil
}

func (r *fakeDoctorRepo) List(_ context.Context, _ uuid.UUID) ([]*model.CRMDoctor, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	created   []*model.CRMAppointment
	createErr error
	lastCode  string
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *model.CRMAppointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	appointment.ID = uuid.New()
	r.created = append(r.created, appointment)
	r.lastCode = appointment.AppointmentCode
	return nil
}

func (r *fakeAppointmentRepo) LastCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	if strings.HasPrefix(r.lastCode, prefix) {
		return r.lastCode, nil
	}
	return "", nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, _, _ uuid.UUID) ([]*model.CRMAppointment, error) {
	return nil, nil
}

func newTestService(patients *fakePatientRepo, doctors *fakeDoctorRepo, appointments *fakeAppointmentRepo) *Service {
	return NewService(patients, doctors, appointments, uuid.New(), 0, metrics.New("crmsync_test"))
}

func syncInput() *model.AppointmentSync {
	start := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	return &model.AppointmentSync{
		Patient: model.LocalPatient{
			Name:  "Ravi Kumar Sharma",
			Phone: "+919812345678",
			Email: "ravi@example.com",
		},
		Doctor: model.LocalDoctor{
			Name: "Dr. Meena Iyer",
		},
		StartTime: start,
		EndTime:   start.Add(45 * time.Minute),
		Status:    "scheduled",
	}
}

func TestSyncAppointmentMatchesExistingRecords(t *testing.T) {
	existingPatient := &model.CRMPatient{Base: model.Base{ID: uuid.New()}, PatientCode: "PAT2026030007"}
	existingDoctor := &model.CRMDoctor{Base: model.Base{ID: uuid.New()}, Name: "Dr. Meena Iyer"}

	patients := &fakePatientRepo{byPhone: map[string]*model.CRMPatient{"+919812345678": existingPatient}}
	doctors := &fakeDoctorRepo{byName: map[string]*model.CRMDoctor{"Dr. Meena Iyer": existingDoctor}}
	appointments := &fakeAppointmentRepo{}

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), syncInput())

	require.True(t, result.Synced)
	assert.Empty(t, patients.created, "matched patient must not be recreated")
	assert.Empty(t, doctors.created, "matched doctor must not be recreated")

	require.Len(t, appointments.created, 1)
	appt := appointments.created[0]
	assert.Equal(t, existingPatient.ID, appt.PatientID)
	assert.Equal(t, existingDoctor.ID, appt.DoctorID)
	assert.Equal(t, model.CRMStatusScheduled, appt.Status)
	assert.Equal(t, model.AppointmentTypeConsultation, appt.AppointmentType)
	assert.Equal(t, model.AppointmentSource, appt.Source)
	assert.Equal(t, 45, appt.DurationMinutes)
}

func TestSyncAppointmentMatchesPatientByEmail(t *testing.T) {
	existingPatient := &model.CRMPatient{Base: model.Base{ID: uuid.New()}, PatientCode: "PAT2026030002"}

	patients := &fakePatientRepo{byEmail: map[string]*model.CRMPatient{"ravi@example.com": existingPatient}}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), syncInput())

	require.True(t, result.Synced)
	assert.Empty(t, patients.created)
	require.Len(t, appointments.created, 1)
	assert.Equal(t, existingPatient.ID, appointments.created[0].PatientID)
}

func TestSyncAppointmentCreatesPlaceholderRecords(t *testing.T) {
	patients := &fakePatientRepo{}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), syncInput())

	require.True(t, result.Synced)
	assert.True(t, strings.HasPrefix(result.Code(), "APT"))

	require.Len(t, patients.created, 1)
	patient := patients.created[0]
	assert.Equal(t, "Ravi", patient.FirstName)
	assert.Equal(t, "Kumar Sharma", patient.LastName)
	assert.Equal(t, "M", patient.Gender)
	assert.False(t, patient.IsConfirmed)
	assert.True(t, patient.IsActive)
	assert.True(t, strings.HasPrefix(patient.PatientCode, "PAT"))

	require.Len(t, doctors.created, 1)
	doctor := doctors.created[0]
	assert.Equal(t, "Dr. Meena Iyer", doctor.Name)
	assert.Equal(t, 500.00, doctor.Fee)
	require.NotNil(t, doctor.Department)
	assert.Equal(t, "General Medicine", *doctor.Department)
	require.NotNil(t, doctor.Specialization)
	assert.Equal(t, "General Physician", *doctor.Specialization)
}

func TestSyncAppointmentUsesSpecialtyWhenGiven(t *testing.T) {
	patients := &fakePatientRepo{}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}

	input := syncInput()
	input.Doctor.Specialty = "Cardiology"

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), input)

	require.True(t, result.Synced)
	require.Len(t, doctors.created, 1)
	require.NotNil(t, doctors.created[0].Department)
	assert.Equal(t, "Cardiology", *doctors.created[0].Department)
}

func TestSyncAppointmentInsertFailure(t *testing.T) {
	patients := &fakePatientRepo{}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{createErr: errors.New("deadlock detected")}

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), syncInput())

	assert.False(t, result.Synced)
	assert.Equal(t, model.SyncFailedSentinel, result.Code())
	assert.Contains(t, result.FailureReason, "appointment insert")
}

func TestSyncAppointmentLookupErrorFails(t *testing.T) {
	patients := &fakePatientRepo{lookupErr: errors.New("connection reset")}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}

	result := newTestService(patients, doctors, appointments).SyncAppointment(context.Background(), syncInput())

	assert.False(t, result.Synced)
	assert.Contains(t, result.FailureReason, "patient reconciliation")
	assert.Empty(t, appointments.created)
}

// blockingPatientRepo stalls phone lookups until the call context expires.
type blockingPatientRepo struct {
	fakePatientRepo
}

func (r *blockingPatientRepo) FindByPhone(ctx context.Context, _ uuid.UUID, _ string) (*model.CRMPatient, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSyncAppointmentCallTimeoutFails(t *testing.T) {
	patients := &blockingPatientRepo{}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}
	svc := NewService(patients, doctors, appointments, uuid.New(), 5*time.Millisecond, metrics.New("crmsync_timeout_test"))

	result := svc.SyncAppointment(context.Background(), syncInput())

	assert.False(t, result.Synced)
	assert.Equal(t, model.SyncFailedSentinel, result.Code())
	assert.Contains(t, result.FailureReason, "patient reconciliation")
	assert.Empty(t, appointments.created)
}

func TestSyncAppointmentSequentialCodes(t *testing.T) {
	patients := &fakePatientRepo{}
	doctors := &fakeDoctorRepo{}
	appointments := &fakeAppointmentRepo{}
	svc := newTestService(patients, doctors, appointments)

	first := svc.SyncAppointment(context.Background(), syncInput())
	second := svc.SyncAppointment(context.Background(), syncInput())

	require.True(t, first.Synced)
	require.True(t, second.Synced)
	assert.NotEqual(t, first.Code(), second.Code())
	assert.True(t, strings.HasSuffix(first.Code(), "0001"))
	assert.True(t, strings.HasSuffix(second.Code(), "0002"))
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		full  string
		first string
		last  string
	}{
		{"Ravi", "Ravi", ""},
		{"Ravi Kumar", "Ravi", "Kumar"},
		{"Ravi Kumar Sharma", "Ravi", "Kumar Sharma"},
		{"  Ravi   Kumar  ", "Ravi", "Kumar"},
		{"", "", ""},
	}

	for _, tc := range cases {
		first, last := splitName(tc.full)
		assert.Equal(t, tc.first, first, "full name %q", tc.full)
		assert.Equal(t, tc.last, last, "full name %q", tc.full)
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 45, durationMinutes(start, start.Add(45*time.Minute)))
	assert.Equal(t, 31, durationMinutes(start, start.Add(30*time.Minute+40*time.Second)))
	assert.Equal(t, 30, durationMinutes(start, start), "zero-length slot clamps to default")
	assert.Equal(t, 30, durationMinutes(start, start.Add(-time.Hour)), "reversed slot clamps to default")
}
