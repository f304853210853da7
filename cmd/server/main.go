package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/pjok-digital/backend/internal/attendance"
	"github.com/pjok-digital/backend/internal/database"
	"github.com/pjok-digital/backend/internal/grades"
	"github.com/pjok-digital/backend/internal/portal"
	"github.com/pjok-digital/backend/internal/state"
	"github.com/pjok-digital/backend/internal/students"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	studentStore := students.NewStore(db)
	attendanceStore := attendance.NewStore(db)
	gradeStore := grades.NewStore(db)
	configStore := grades.NewConfigStore(db)
	stateStore := state.NewStore(db, studentStore, attendanceStore, gradeStore, configStore)

	// Services
	attendanceService := attendance.NewService(attendanceStore, studentStore)
	gradeService := grades.NewService(gradeStore, configStore, studentStore, attendanceService)

	// Handlers
	studentHandler := students.NewHandler(studentStore)
	attendanceHandler := attendance.NewHandler(attendanceService)
	gradeHandler := grades.NewHandler(gradeService, configStore)
	portalHandler := portal.NewHandler(studentStore, gradeService, attendanceService)
	stateHandler := state.NewHandler(stateStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Students. Fixed paths go before the {id} wildcard.
	api.HandleFunc("/students", studentHandler.Create).Methods("POST")
	api.HandleFunc("/students", studentHandler.List).Methods("GET")
	api.HandleFunc("/students/lookup", studentHandler.Lookup).Methods("GET")
	api.HandleFunc("/students/classes", studentHandler.ListClasses).Methods("GET")
	api.HandleFunc("/students/{id}", studentHandler.Get).Methods("GET")
	api.HandleFunc("/students/{id}", studentHandler.Update).Methods("PUT")
	api.HandleFunc("/students/{id}", studentHandler.Delete).Methods("DELETE")

	// Attendance
	api.HandleFunc("/semesters/{semester}/attendance", attendanceHandler.Record).Methods("POST")
	api.HandleFunc("/semesters/{semester}/attendance", attendanceHandler.Remove).Methods("DELETE")
	api.HandleFunc("/semesters/{semester}/attendance", attendanceHandler.List).Methods("GET")
	api.HandleFunc("/semesters/{semester}/attendance/checkin", attendanceHandler.Checkin).Methods("POST")
	api.HandleFunc("/semesters/{semester}/attendance/log", attendanceHandler.Log).Methods("GET")

	// Semester config & materials
	api.HandleFunc("/semesters/{semester}/config", gradeHandler.GetConfig).Methods("GET")
	api.HandleFunc("/semesters/{semester}/config/kkm", gradeHandler.UpdateKKM).Methods("PUT")
	api.HandleFunc("/semesters/{semester}/config/materials", gradeHandler.AddMaterial).Methods("POST")
	api.HandleFunc("/semesters/{semester}/config/materials/{id}", gradeHandler.UpdateMaterial).Methods("PUT")
	api.HandleFunc("/semesters/{semester}/config/materials/{id}", gradeHandler.DeleteMaterial).Methods("DELETE")

	// Grades
	api.HandleFunc("/semesters/{semester}/grades/{id}", gradeHandler.GetStudentGrades).Methods("GET")
	api.HandleFunc("/semesters/{semester}/grades/{id}", gradeHandler.UpdateGrade).Methods("PUT")
	api.HandleFunc("/semesters/{semester}/remediation", gradeHandler.RunRemediation).Methods("POST")

	// Recaps & exports
	api.HandleFunc("/semesters/{semester}/recap/grades", gradeHandler.Recap).Methods("GET")
	api.HandleFunc("/semesters/{semester}/recap/attendance", attendanceHandler.Recap).Methods("GET")
	api.HandleFunc("/semesters/{semester}/export/grades.csv", gradeHandler.ExportCSV).Methods("GET")
	api.HandleFunc("/semesters/{semester}/export/attendance.csv", attendanceHandler.ExportCSV).Methods("GET")

	// Student portal
	api.HandleFunc("/semesters/{semester}/portal/{identifier}", portalHandler.GetReport).Methods("GET")

	// Backup / restore
	api.HandleFunc("/state", stateHandler.Export).Methods("GET")
	api.HandleFunc("/state", stateHandler.Import).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
