package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/sevaconnect/booking-api/internal/repository"
)

type crmPatientRepository struct {
	db *sqlx.DB
}

type crmDoctorRepository struct {
	db *sqlx.DB
}

type crmAppointmentRepository struct {
	db *sqlx.DB
}

type apiKeyRepository struct {
	db *sqlx.DB
}

type doctorAccountRepository struct {
	db *sqlx.DB
}

func NewCRMPatientRepository(db *sqlx.DB) repository.CRMPatientRepository {
	return &crmPatientRepository{db: db}
}

func NewCRMDoctorRepository(db *sqlx.DB) repository.CRMDoctorRepository {
	return &crmDoctorRepository{db: db}
}

func NewCRMAppointmentRepository(db *sqlx.DB) repository.CRMAppointmentRepository {
	return &crmAppointmentRepository{db: db}
}

func NewAPIKeyRepository(db *sqlx.DB) repository.APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func NewDoctorAccountRepository(db *sqlx.DB) repository.DoctorAccountRepository {
	return &doctorAccountRepository{db: db}
}
