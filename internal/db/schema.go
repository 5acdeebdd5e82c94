package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Table DDL for the healthnet schema. Appointments reference patients and
// doctors with restrictive foreign keys; deleting a referenced person fails
// at the database level and is surfaced as a conflict by the registries.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS healthnet`,

	`CREATE TABLE IF NOT EXISTS healthnet.users (
		id            UUID PRIMARY KEY,
		username      VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20) NOT NULL,
		full_name     VARCHAR(100) NOT NULL,
		email         VARCHAR(100),
		phone         VARCHAR(20),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS healthnet.patients (
		id                UUID PRIMARY KEY,
		user_id           UUID REFERENCES healthnet.users(id),
		patient_id        VARCHAR(20) UNIQUE NOT NULL,
		first_name        VARCHAR(50) NOT NULL,
		last_name         VARCHAR(50) NOT NULL,
		date_of_birth     DATE,
		age               INT,
		gender            VARCHAR(10),
		phone             VARCHAR(20),
		email             VARCHAR(100),
		address           TEXT,
		medical_history   TEXT,
		emergency_contact VARCHAR(100),
		emergency_phone   VARCHAR(20),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS healthnet.doctors (
		id             UUID PRIMARY KEY,
		user_id        UUID REFERENCES healthnet.users(id),
		first_name     VARCHAR(50) NOT NULL,
		last_name      VARCHAR(50) NOT NULL,
		specialization VARCHAR(100) NOT NULL,
		phone          VARCHAR(20),
		email          VARCHAR(100),
		schedule       TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS healthnet.staff (
		id         UUID PRIMARY KEY,
		user_id    UUID REFERENCES healthnet.users(id),
		first_name VARCHAR(50) NOT NULL,
		last_name  VARCHAR(50) NOT NULL,
		role       VARCHAR(50) NOT NULL,
		department VARCHAR(100),
		phone      VARCHAR(20),
		email      VARCHAR(100),
		hire_date  DATE,
		salary     NUMERIC(12,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS healthnet.appointments (
		id               UUID PRIMARY KEY,
		patient_id       UUID NOT NULL REFERENCES healthnet.patients(id),
		doctor_id        UUID NOT NULL REFERENCES healthnet.doctors(id),
		appointment_date DATE NOT NULL,
		appointment_time VARCHAR(5) NOT NULL,
		status           VARCHAR(20) NOT NULL DEFAULT 'Scheduled',
		notes            TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS healthnet.activity_log (
		id          UUID PRIMARY KEY,
		occurred_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		actor       VARCHAR(50) NOT NULL,
		action      VARCHAR(100) NOT NULL,
		detail      TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_date_time
		ON healthnet.appointments (appointment_date, appointment_time)`,
}

// EnsureSchema creates the healthnet schema and all tables if they do not
// exist. Safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	log.Println("✓ Database schema ensured")
	return nil
}
