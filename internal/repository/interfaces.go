package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sevaconnect/booking-api/internal/model"
)

// All repository interfaces in one file. The CRM store is append-only from
// this side: the only writes are inserts.
type (
	// CodeLookup is the minimal capability the sequence generator needs:
	// the lexicographically greatest existing code sharing a prefix, or
	// ("", nil) when the prefix is unused.
	CodeLookup interface {
		LastCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	}

	CRMPatientRepository interface {
		CodeLookup
		FindByPhone(ctx context.Context, hospitalID uuid.UUID, phone string) (*model.CRMPatient, error)
		FindByEmail(ctx context.Context, hospitalID uuid.UUID, email string) (*model.CRMPatient, error)
		Create(ctx context.Context, patient *model.CRMPatient) error
	}

	CRMDoctorRepository interface {
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.CRMDoctor, error)
		FindByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.CRMDoctor, error)
		Create(ctx context.Context, doctor *model.CRMDoctor) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.CRMDoctor, error)
	}

	CRMAppointmentRepository interface {
		CodeLookup
		Create(ctx context.Context, appointment *model.CRMAppointment) error
		ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.CRMAppointment, error)
	}

	APIKeyRepository interface {
		GetByKey(ctx context.Context, key string) (*model.APIKey, error)
		Touch(ctx context.Context, id uuid.UUID) error
	}

	DoctorAccountRepository interface {
		GetByEmail(ctx context.Context, email string) (*model.DoctorAccount, error)
	}
)

// ErrNotFound is returned by lookups that matched nothing. Repositories
// translate sql.ErrNoRows into this so services never import database/sql.
type notFoundError struct{}

func (notFoundError) Error() string { return "record not found" }

var ErrNotFound error = notFoundError{}
