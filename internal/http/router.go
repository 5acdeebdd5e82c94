package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/healthnet-hms/clinic-service/internal/activity"
	"github.com/healthnet-hms/clinic-service/internal/appointments"
	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/doctors"
	"github.com/healthnet-hms/clinic-service/internal/identity"
	"github.com/healthnet-hms/clinic-service/internal/messaging"
	"github.com/healthnet-hms/clinic-service/internal/patients"
	"github.com/healthnet-hms/clinic-service/internal/staff"
	"github.com/healthnet-hms/clinic-service/internal/stats"
	"github.com/healthnet-hms/clinic-service/internal/telemetry"
)

// SetupRouter initializes all routes for the application. The metrics
// parameter may be nil; auth and permission middleware then skip recording.
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Activity feed and stats back every registry, so they come first.
	activityService := activity.NewService(activity.NewRepository(db))
	if metrics != nil {
		activityService = activity.NewServiceWithMetrics(activity.NewRepository(db), metrics)
	}
	activityHandler := activity.NewHandler(activityService)

	statsService := stats.NewService(stats.NewRepository(db))
	statsHandler := stats.NewHandler(statsService)

	identityService := identity.NewService(identity.NewRepository(db, publisher), verifier, activityService)
	identityHandler := identity.NewHandler(identityService)

	patientService := patients.NewService(patients.NewRepository(db, publisher), activityService, statsService)
	patientHandler := patients.NewHandler(patientService)

	doctorService := doctors.NewService(doctors.NewRepository(db, publisher), activityService, statsService)
	doctorHandler := doctors.NewHandler(doctorService)

	staffService := staff.NewService(staff.NewRepository(db, publisher), activityService, statsService)
	staffHandler := staff.NewHandler(staffService)

	appointmentService := appointments.NewService(appointments.NewRepository(db, publisher), activityService, statsService)
	appointmentHandler := appointments.NewHandler(appointmentService)

	authenticate := auth.Middleware(verifier)
	if metrics != nil {
		authenticate = auth.MiddlewareWithMetrics(verifier, metrics)
	}

	// protect chains token verification and a permission check in front of a
	// handler.
	protect := func(permission string, h http.HandlerFunc) http.Handler {
		guard := auth.RequirePermission(permission, perms)
		if metrics != nil {
			guard = auth.RequirePermissionWithMetrics(permission, perms, metrics)
		}
		return authenticate(guard(h))
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-service"))
	if metrics != nil {
		r.Use(requestMetricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-service"}`))
	}).Methods("GET")

	// Auth routes. Signup, login and logout are public; logout succeeds even
	// with an expired token since sessions are stateless.
	r.HandleFunc("/auth/signup", identityHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", identityHandler.Login).Methods("POST")
	r.HandleFunc("/auth/logout", identityHandler.Logout).Methods("POST")
	r.Handle("/auth/session", authenticate(http.HandlerFunc(identityHandler.Session))).Methods("GET")

	// Patient registry
	r.Handle("/patients", protect("patient:create", patientHandler.CreatePatient)).Methods("POST")
	r.Handle("/patients", protect("patient:view", patientHandler.ListPatients)).Methods("GET")
	r.Handle("/patients/{id}", protect("patient:view", patientHandler.GetPatient)).Methods("GET")
	r.Handle("/patients/{id}", protect("patient:update", patientHandler.UpdatePatient)).Methods("PUT")
	r.Handle("/patients/{id}", protect("patient:delete", patientHandler.DeletePatient)).Methods("DELETE")

	// Doctor registry
	r.Handle("/doctors", protect("doctor:create", doctorHandler.CreateDoctor)).Methods("POST")
	r.Handle("/doctors", protect("doctor:view", doctorHandler.ListDoctors)).Methods("GET")
	r.Handle("/doctors/{id}", protect("doctor:view", doctorHandler.GetDoctor)).Methods("GET")
	r.Handle("/doctors/{id}", protect("doctor:update", doctorHandler.UpdateDoctor)).Methods("PUT")
	r.Handle("/doctors/{id}", protect("doctor:delete", doctorHandler.DeleteDoctor)).Methods("DELETE")

	// Staff registry
	r.Handle("/staff", protect("staff:create", staffHandler.CreateStaff)).Methods("POST")
	r.Handle("/staff", protect("staff:view", staffHandler.ListStaff)).Methods("GET")
	r.Handle("/staff/{id}", protect("staff:view", staffHandler.GetStaff)).Methods("GET")
	r.Handle("/staff/{id}", protect("staff:update", staffHandler.UpdateStaff)).Methods("PUT")
	r.Handle("/staff/{id}", protect("staff:delete", staffHandler.DeleteStaff)).Methods("DELETE")

	// Appointment ledger
	r.Handle("/appointments", protect("appointment:create", appointmentHandler.CreateAppointment)).Methods("POST")
	r.Handle("/appointments", protect("appointment:view", appointmentHandler.ListAppointments)).Methods("GET")
	r.Handle("/appointments/{id}", protect("appointment:view", appointmentHandler.GetAppointment)).Methods("GET")
	r.Handle("/appointments/{id}", protect("appointment:update", appointmentHandler.UpdateAppointment)).Methods("PUT")
	r.Handle("/appointments/{id}/status", protect("appointment:update", appointmentHandler.UpdateAppointmentStatus)).Methods("PATCH")
	r.Handle("/appointments/{id}", protect("appointment:delete", appointmentHandler.DeleteAppointment)).Methods("DELETE")

	// Dashboard
	r.Handle("/stats", protect("stats:view", statsHandler.GetStats)).Methods("GET")
	r.Handle("/activity", protect("activity:view", activityHandler.GetActivity)).Methods("GET")

	return r
}
