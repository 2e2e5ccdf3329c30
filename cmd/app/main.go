package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"schoolmeal/cmd/fx/account_fx"
	"schoolmeal/cmd/fx/config_fx"
	"schoolmeal/cmd/fx/controllers_fx"
	"schoolmeal/cmd/fx/db_fx"
	"schoolmeal/cmd/fx/estimator_fx"
	"schoolmeal/cmd/fx/food_fx"
	"schoolmeal/cmd/fx/ledger_fx"
	"schoolmeal/cmd/fx/memcache_fx"
	"schoolmeal/cmd/fx/menu_fx"
	"schoolmeal/cmd/fx/report_fx"
	"schoolmeal/cmd/fx/student_fx"
	"schoolmeal/internal/api/controllers"
	"schoolmeal/internal/infra"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/middleware"
	"schoolmeal/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		estimator_fx.Module,
		student_fx.Module,
		food_fx.Module,
		menu_fx.Module,
		ledger_fx.Module,
		account_fx.Module,
		report_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	tokens *utils.TokenIssuer,
	accountController *controllers.AccountController,
	ledgerController *controllers.LedgerController,
	studentController *controllers.StudentController,
	foodController *controllers.FoodController,
	menuController *controllers.MenuController,
	estimateController *controllers.EstimateController,
	reportController *controllers.ReportController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	RegisterRoutes(r, tokens,
		accountController,
		ledgerController,
		studentController,
		foodController,
		menuController,
		estimateController,
		reportController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tokens *utils.TokenIssuer,
	accountController *controllers.AccountController,
	ledgerController *controllers.LedgerController,
	studentController *controllers.StudentController,
	foodController *controllers.FoodController,
	menuController *controllers.MenuController,
	estimateController *controllers.EstimateController,
	reportController *controllers.ReportController) {

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)
	authGroup.POST("/logout", middleware.JWTAuthMiddleware(tokens), accountController.Logout)

	api.GET("/menu/today", menuController.TodayMenu)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(tokens))

	meGroup := authed.Group("/me", middleware.RoleMiddleware(services.RoleStudent))
	meGroup.GET("/remaining", ledgerController.CurrentRemaining)
	meGroup.POST("/remaining/refresh", ledgerController.RefreshSession)

	studentsGroup := authed.Group("/students")
	studentsGroup.GET("/:id", studentController.GetStudent)
	studentsGroup.POST("/:id/intake", ledgerController.RecordIntake)
	studentsGroup.GET("/:id/summary", ledgerController.GetDailySummary)
	studentsGroup.GET("/:id/range", ledgerController.GetRangeSummary)
	studentsGroup.GET("/:id/logs/today", ledgerController.GetTodayLogs)
	studentsGroup.PUT("/:id/targets",
		middleware.RoleMiddleware(services.RoleParent, services.RoleAdmin),
		ledgerController.RecalculateTargets)
	studentsGroup.GET("/:id/export",
		middleware.RoleMiddleware(services.RoleParent, services.RoleAdmin),
		reportController.ExportYear)

	childrenGroup := authed.Group("/children", middleware.RoleMiddleware(services.RoleParent))
	childrenGroup.POST("", studentController.AddChild)
	childrenGroup.GET("", studentController.ListChildren)
	childrenGroup.GET("/overview", ledgerController.ChildrenOverview)

	foodsGroup := authed.Group("/foods")
	foodsGroup.GET("", foodController.Search)
	foodsGroup.GET("/barcode/:code", foodController.GetByBarcode)
	foodsGroup.GET("/:id", foodController.Get)
	foodsGroup.POST("", foodController.Create)
	foodsGroup.PUT("/:id", foodController.Update)
	foodsGroup.DELETE("/:id", foodController.Delete)

	menuGroup := authed.Group("/menu/packs", middleware.RoleMiddleware(services.RoleCook, services.RoleAdmin))
	menuGroup.GET("", menuController.ListPacks)
	menuGroup.GET("/:week/:day", menuController.GetPack)
	menuGroup.POST("/:week/:day/entries", menuController.AddEntry)
	menuGroup.PATCH("/:week/:day/entries/:entry_id", menuController.SetEntryActive)
	menuGroup.DELETE("/:week/:day/entries/:entry_id", menuController.RemoveEntry)

	authed.POST("/estimate", estimateController.Analyze)

	authed.POST("/admins", middleware.RoleMiddleware(services.RoleAdmin), accountController.CreateAdmin)
}
