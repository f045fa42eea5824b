package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/ahmad435-vlaygo/adminValygobackend/config"
	"github.com/ahmad435-vlaygo/adminValygobackend/database"
	"github.com/ahmad435-vlaygo/adminValygobackend/email"
	"github.com/ahmad435-vlaygo/adminValygobackend/handlers"
	"github.com/ahmad435-vlaygo/adminValygobackend/middleware"
	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	config.ValidateConfig(cfg)

	if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
		log.Fatal("Failed to initialize JWT:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	seeded, err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	var mailer email.Mailer = email.NopMailer{}
	if cfg.EmailHost != "" {
		mailer = email.NewSMTPMailer(cfg)
	}

	if seeded {
		go func(to string) {
			subject, html := email.Welcome("Administrator", cfg.FrontendURL)
			if err := mailer.Send(to, subject, html); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", to, err)
			}
		}(cfg.AdminEmail)
	}

	h := handlers.NewHandlers(db, cfg, mailer)

	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit)

	// Public routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.JWTAuth)

	protected.HandleFunc("/auth/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/auth/profile", h.UpdateProfile).Methods("PUT")

	admin := protected.PathPrefix("/admin").Subrouter()

	// Dashboard
	admin.HandleFunc("/dashboard/stats", h.GetDashboardStats).Methods("GET")
	admin.HandleFunc("/dashboard/overview-stats", h.GetOverviewStats).Methods("GET")
	admin.HandleFunc("/dashboard/chart-data", h.GetChartData).Methods("GET")
	admin.HandleFunc("/dashboard/users-stats", h.GetUsersStats).Methods("GET")
	admin.HandleFunc("/dashboard/recent-users", h.GetRecentUsers).Methods("GET")
	admin.HandleFunc("/dashboard/subscription-stats", h.GetDashboardSubscriptionStats).Methods("GET")
	admin.HandleFunc("/dashboard/transaction-stats", h.GetDashboardTransactionStats).Methods("GET")

	// Users
	admin.HandleFunc("/users", h.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users/stats", h.GetUserStats).Methods("GET")
	admin.HandleFunc("/users/{id}", h.GetUserByID).Methods("GET")
	admin.HandleFunc("/users/{id}/status", h.UpdateUserStatus).Methods("PUT")
	admin.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")

	// Subscriptions
	admin.HandleFunc("/subscriptions", h.GetAllSubscriptions).Methods("GET")
	admin.HandleFunc("/subscriptions/stats", h.GetSubscriptionStats).Methods("GET")
	admin.HandleFunc("/subscriptions/{id}/status", h.UpdateSubscriptionStatus).Methods("PUT")

	// Transactions
	admin.HandleFunc("/transactions", h.GetAllTransactions).Methods("GET")
	admin.HandleFunc("/transactions/stats", h.GetTransactionStats).Methods("GET")
	admin.HandleFunc("/transactions/{id}", h.GetTransactionByID).Methods("GET")

	// KYC
	admin.HandleFunc("/kyc/status", h.GetKycStatusFromUsers).Methods("GET")
	admin.HandleFunc("/kyc", h.GetAllKycRequests).Methods("GET")
	admin.HandleFunc("/kyc/stats", h.GetKycStats).Methods("GET")
	admin.HandleFunc("/kyc/{id}", h.GetKycByID).Methods("GET")
	admin.HandleFunc("/kyc/{id}/approve", h.ApproveKyc).Methods("PUT")
	admin.HandleFunc("/kyc/{id}/reject", h.RejectKyc).Methods("PUT")

	// Sales team: agent self-service dashboard first, then role-gated CRUD
	admin.Handle("/sales-team/dashboard",
		middleware.RoleAuth(models.RoleSalesTeam)(http.HandlerFunc(h.GetSalesTeamDashboard))).Methods("GET")

	sales := admin.PathPrefix("/sales-team").Subrouter()
	sales.Use(middleware.RoleAuth(models.RoleSuperAdmin, models.RoleAdmin))
	sales.HandleFunc("", h.CreateSalesTeamUser).Methods("POST")
	sales.HandleFunc("", h.GetSalesTeamUsers).Methods("GET")
	sales.HandleFunc("/{id}", h.UpdateSalesTeamUser).Methods("PUT")
	sales.HandleFunc("/{id}", h.DeleteSalesTeamUser).Methods("DELETE")

	// Meetings
	admin.HandleFunc("/meetings", h.CreateMeeting).Methods("POST")
	admin.HandleFunc("/meetings", h.GetMeetings).Methods("GET")
	admin.HandleFunc("/meetings/{id}", h.UpdateMeeting).Methods("PUT")
	admin.HandleFunc("/meetings/{id}", h.DeleteMeeting).Methods("DELETE")

	port := cfg.Port
	if port == "" {
		port = "3002"
	}

	log.Printf("Admin backend server running on port %s", port)
	log.Printf("Environment: %s", cfg.Environment)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
