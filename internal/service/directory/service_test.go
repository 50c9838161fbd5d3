package directory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
)

type countingDoctorRepo struct {
	doctors   []*model.CRMDoctor
	listCalls int
}

func (r *countingDoctorRepo) Get(_ context.Context, _ uuid.UUID, _ uuid.UUID) (*model.CRMDoctor, error) {
	return nil, repository.ErrNotFound
}

func (r *countingDoctorRepo) FindByName(_ context.Context, _ uuid.UUID, _ string) (*model.CRMDoctor, error) {
	return nil, repository.ErrNotFound
}

func (r *countingDoctorRepo) Create(_ context.Context, _ *model.CRMDoctor) error {
	return nil
}

func (r *countingDoctorRepo) List(_ context.Context, _ uuid.UUID) ([]*model.CRMDoctor, error) {
	r.listCalls++
	return r.doctors, nil
}

type stubAppointmentRepo struct {
	appointments []*model.CRMAppointment
}

func (r *stubAppointmentRepo) Create(_ context.Context, _ *model.CRMAppointment) error {
	return nil
}

func (r *stubAppointmentRepo) LastCodeWithPrefix(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (r *stubAppointmentRepo) ListForDoctor(_ context.Context, _, _ uuid.UUID) ([]*model.CRMAppointment, error) {
	return r.appointments, nil
}

func TestListDoctorsCaches(t *testing.T) {
	repo := &countingDoctorRepo{doctors: []*model.CRMDoctor{
		{Base: model.Base{ID: uuid.New()}, Name: "Dr. Meena Iyer"},
	}}
	svc := NewService(repo, &stubAppointmentRepo{}, uuid.New(), time.Minute)

	first, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	second, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls, "second call must come from cache")
}

func TestDoctorAppointments(t *testing.T) {
	doctorID := uuid.New()
	repo := &stubAppointmentRepo{appointments: []*model.CRMAppointment{
		{Base: model.Base{ID: uuid.New()}, AppointmentCode: "APT2026030001", DoctorID: doctorID},
	}}
	svc := NewService(&countingDoctorRepo{}, repo, uuid.New(), time.Minute)

	appointments, err := svc.DoctorAppointments(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "APT2026030001", appointments[0].AppointmentCode)
}
