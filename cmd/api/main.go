package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/config"
	appHTTP "github.com/staffhub/staffhub-backend-go/internal/handler/http"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub/staffhub-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhub/staffhub-backend-go/internal/service/attendance"
	dashboardService "github.com/staffhub/staffhub-backend-go/internal/service/dashboard"
	leaveService "github.com/staffhub/staffhub-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	clk := clock.System()
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clk, loc)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, clk, loc)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc, taskRepo, clk, loc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(cfg.App.Env, JWTService, attendanceHandler, leaveHandler, dashboardHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
