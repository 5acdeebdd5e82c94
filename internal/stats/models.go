package stats

import "time"

// Snapshot is the dashboard summary. It is advisory: the four counts come
// from separate queries and are not taken in one transaction.
type Snapshot struct {
	Patients          int       `json:"patients"`
	Doctors           int       `json:"doctors"`
	Staff             int       `json:"staff"`
	AppointmentsToday int       `json:"appointments_today"`
	GeneratedAt       time.Time `json:"generated_at"`
}
