package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/internal/application/usecase"
	infrapdf "github.com/jhoicas/cierre-fiscal/internal/infrastructure/pdf"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/postgres"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/sat"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/cierre-fiscal/internal/interfaces/http"
	"github.com/jhoicas/cierre-fiscal/pkg/config"
	"github.com/jhoicas/cierre-fiscal/pkg/jwt"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	documentRepo := postgres.NewFiscalDocumentRepository(pool)
	certRepo := postgres.NewRetentionCertificateRepository(pool)
	settlementRepo := postgres.NewPeriodSettlementRepository(pool)

	// Exportadores: PDF (maroto), libro XLSX (excelize) y formulario SAT-2237 (XML)
	exporters := settlement.Exporters{
		PDF:      infrapdf.NewMarotoPDFGenerator(),
		Workbook: xlsx.NewWorkbookExporter(),
		Form:     sat.NewDeclarationBuilder(),
	}
	settlementUC := settlement.NewUseCase(companyRepo, documentRepo, certRepo, settlementRepo, exporters, log)
	moduleSvc := usecase.NewModuleService(companyRepo)

	tokens, err := jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Fiscal.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Fiscal.SwaggerPath,
			Path:     "docs",
			Title:    "Cierre Fiscal API",
		}))
	} else {
		log.Warn().Str("path", cfg.Fiscal.SwaggerPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SettlementUC:  settlementUC,
		ModuleChecker: moduleSvc,
		Tokens:        tokens,
		Log:           log,
		FiscalModule:  cfg.Fiscal.DefaultModule,
		ISRModule:     cfg.Fiscal.ISRModule,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
