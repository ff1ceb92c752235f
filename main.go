// @title           Refedo Operations API
// @version         1.0
// @description     Operations tracking backend for steel fabrication projects:
// @description     production logs, operation milestones, document submissions
// @description     and the project/building rollup dashboard.

// @contact.name   API Support
// @contact.url    https://ops.refedo.com

// @host      localhost:8080

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/refedo/OTS-sub004/docs"
	"github.com/refedo/OTS-sub004/handlers"
	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/services"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

var cronRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"https://ops.refedo.com",
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Authorization", "Content-Type", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// AuthMiddleware requires a valid, unexpired session in the Authorization
// header and rejects suspended accounts.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.SessionIDFromHeader(c.GetHeader("Authorization"))
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
			c.Abort()
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}
		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("user")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
			c.Abort()
			return
		}
		user, _ := v.(*models.User)
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func safeGo(ctx context.Context, wg *sync.WaitGroup, name string, fn func(context.Context) error, cronLogger *log.Logger) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	emailService := services.NewEmailService(db)

	// Daily maintenance at 06:30.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 6 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "PendingApprovalDigest", func(ctx context.Context) error {
			return emailService.SendPendingApprovalDigest(7)
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.GET("/api/validate-session", handlers.ValidateSessionHandler(db))

	auth := r.Group("/api")
	auth.Use(AuthMiddleware(db))

	// ==================== 2. USERS ====================
	auth.POST("/users", AdminOnly(), handlers.CreateUser(db))
	auth.GET("/users", handlers.GetUsers(db))
	auth.GET("/users/:id", handlers.GetUserByID(db))
	auth.PUT("/users/:id", AdminOnly(), handlers.UpdateUser(db))
	auth.PUT("/users/:id/suspend", AdminOnly(), handlers.SuspendUser(db))
	auth.DELETE("/users/:id", AdminOnly(), handlers.DeleteUser(db))

	// ==================== 3. USER SETTINGS ====================
	auth.GET("/settings/:user_id", handlers.GetSettings(db))
	auth.PUT("/settings/:user_id", handlers.UpsertSettings(db))

	// ==================== 4. PROJECTS ====================
	auth.POST("/projects", handlers.CreateProject(db))
	auth.GET("/projects", handlers.GetProjects(db))
	auth.GET("/projects/:id", handlers.GetProjectByID(db))
	auth.PUT("/projects/:id", handlers.UpdateProject(db))
	auth.DELETE("/projects/:id", AdminOnly(), handlers.DeleteProject(db))

	// ==================== 5. BUILDINGS ====================
	auth.POST("/buildings", handlers.CreateBuilding(db))
	auth.GET("/buildings", handlers.GetBuildings(db))
	auth.GET("/buildings/:id", handlers.GetBuildingByID(db))
	auth.PUT("/buildings/:id", handlers.UpdateBuilding(db))
	auth.DELETE("/buildings/:id", AdminOnly(), handlers.DeleteBuilding(db))
	auth.GET("/buildings/:id/production", handlers.GetBuildingProduction(db))

	// ==================== 6. ASSEMBLY PARTS ====================
	auth.POST("/parts", handlers.CreateAssemblyPart(db))
	auth.GET("/parts", handlers.GetAssemblyParts(db))
	auth.GET("/parts/:id", handlers.GetAssemblyPartByID(db))
	auth.PUT("/parts/:id", handlers.UpdateAssemblyPart(db))
	auth.DELETE("/parts/:id", handlers.DeleteAssemblyPart(db))
	auth.GET("/parts/:id/qr", handlers.GeneratePartQRCode(db))

	// ==================== 7. PRODUCTION LOGS ====================
	auth.POST("/production-logs", handlers.CreateProductionLog(db))
	auth.GET("/production-logs", handlers.GetProductionLogs(db))
	auth.GET("/process-types", handlers.GetProcessTypes())

	// ==================== 8. OPERATION EVENTS ====================
	auth.POST("/operation-events", handlers.CreateOperationEvent(db))
	auth.GET("/operation-events", handlers.GetOperationEvents(db))
	auth.DELETE("/operation-events/:id", handlers.DeleteOperationEvent(db))

	// ==================== 9. DOCUMENT SUBMISSIONS ====================
	auth.POST("/document-submissions", handlers.CreateDocumentSubmission(db))
	auth.GET("/document-submissions", handlers.GetDocumentSubmissions(db))
	auth.PUT("/document-submissions/:id/approve", handlers.ApproveDocumentSubmission(db))

	// ==================== 10. STAGE CATALOG ====================
	auth.POST("/stage-config", AdminOnly(), handlers.CreateStageConfig(db))
	auth.GET("/stage-config", handlers.GetStageConfigs(db))
	auth.PUT("/stage-config/:id", AdminOnly(), handlers.UpdateStageConfig(db))
	auth.DELETE("/stage-config/:id", AdminOnly(), handlers.DeleteStageConfig(db))

	// ==================== 11. ROLLUPS ====================
	auth.GET("/rollups", handlers.GetProjectRollups(db))
	auth.GET("/rollups/:id", handlers.GetProjectRollupByID(db))

	// ==================== 12. EXPORTS & REPORTS ====================
	auth.GET("/exports/rollups", handlers.ExportRollupExcel())
	auth.GET("/exports/parts", handlers.ExportPartsExcel())
	auth.GET("/projects/:id/report", handlers.GenerateProjectReportPDF(db))

	// ==================== 13. PLANNING (OKR / KPI) ====================
	auth.POST("/planning/objectives", handlers.CreateObjective(gormDB))
	auth.GET("/planning/objectives", handlers.GetObjectives(gormDB))
	auth.PUT("/planning/objectives/:id", handlers.UpdateObjective(gormDB))
	auth.DELETE("/planning/objectives/:id", handlers.DeleteObjective(gormDB))
	auth.POST("/planning/key-results", handlers.CreateKeyResult(gormDB))
	auth.PUT("/planning/key-results/:id", handlers.UpdateKeyResultProgress(gormDB))
	auth.POST("/planning/kpis", handlers.CreateKPIRecord(gormDB, db))
	auth.GET("/planning/kpis", handlers.GetKPIRecords(gormDB))

	// ==================== 14. ACCOUNT MAPPINGS ====================
	auth.POST("/account-mappings", AdminOnly(), handlers.CreateAccountMapping(storage.GetGormDB()))
	auth.GET("/account-mappings", handlers.GetAccountMappings(gormDB))
	auth.PUT("/account-mappings/:id", AdminOnly(), handlers.UpdateAccountMapping(gormDB))
	auth.DELETE("/account-mappings/:id", AdminOnly(), handlers.DeleteAccountMapping(gormDB))

	// ==================== 15. ACTIVITY LOGS ====================
	auth.GET("/logs", handlers.GetActivityLogsHandler(db))

	// ==================== 16. API DOCS ====================
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil || portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT environment variable: %s", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
