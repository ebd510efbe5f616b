// @title        Facturador AFIP
// @version      1.0
// @description  Emisión de comprobantes electrónicos AFIP (WSAA + WSFEv1) con PDF y código QR.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token de administrador>
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
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	_ "github.com/jhoicas/facturador-afip/docs"
	"github.com/jhoicas/facturador-afip/internal/application/billing"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	infraafip "github.com/jhoicas/facturador-afip/internal/infrastructure/afip"
	"github.com/jhoicas/facturador-afip/internal/infrastructure/directory"
	infrapdf "github.com/jhoicas/facturador-afip/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador-afip/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/facturador-afip/internal/interfaces/http"
	"github.com/jhoicas/facturador-afip/pkg/config"
	"github.com/jhoicas/facturador-afip/pkg/logger"
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
		Str("afip", cfg.AFIP.Environment).
		Msg("iniciando aplicación")

	issuers := make([]entity.Issuer, 0, len(cfg.AFIP.Issuers))
	for _, is := range cfg.AFIP.Issuers {
		issuers = append(issuers, entity.Issuer{
			CUIT:              is.CUIT,
			RazonSocial:       is.RazonSocial,
			Domicilio:         is.Domicilio,
			CondicionIVA:      is.CondicionIVA,
			IngresosBrutos:    is.IngresosBrutos,
			InicioActividades: is.InicioActividades,
			CertPath:          is.CertPath,
			KeyPath:           is.KeyPath,
			KeyPassword:       is.KeyPassword,
		})
	}
	registry, err := billing.NewIssuerRegistry(issuers)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de emisores")
	}

	osFs := afero.NewOsFs()
	receivers := directory.New()
	if cfg.AFIP.ReceiversFile != "" {
		n, err := receivers.LoadFile(osFs, cfg.AFIP.ReceiversFile)
		if err != nil {
			log.Fatal().Err(err).Msg("directorio de receptores")
		}
		log.Info().Int("receptores", n).Str("archivo", cfg.AFIP.ReceiversFile).Msg("receptores cargados")
	}

	store, err := storage.NewOSPDFStore(cfg.PDF.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de PDF")
	}
	logo, err := infrapdf.LoadLogo(osFs, cfg.PDF.LogoPath)
	if err != nil {
		log.Warn().Err(err).Msg("logo no disponible, el PDF se genera sin logo")
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(logo)

	// WSAA + WSFEv1: mismo entorno para ambos servicios.
	clock := clockwork.NewRealClock()
	wsaaURL, wsfeURL := infraafip.Endpoints(cfg.AFIP.Environment, cfg.AFIP.WSAAURL, cfg.AFIP.WSFEURL)
	httpClient := infraafip.NewHTTPClient(cfg.AFIP.RequestTimeout, cfg.AFIP.LegacyTLS)
	wsaa := infraafip.NewWSAAClient(wsaaURL, httpClient, clock, cfg.AFIP.TokenValidity, log.Component("wsaa"))
	wsfe := infraafip.NewWSFEClient(wsfeURL, httpClient, log.Component("wsfe"))
	loginSvc := infraafip.NewLoginService(wsaa, clock, infraafip.LoginConfig{
		Service:  cfg.AFIP.Service,
		Backdate: cfg.AFIP.TicketBackdate,
		TTL:      cfg.AFIP.TicketTTL,
	}, nil, log.Component("login"))

	tokens := billing.NewTokenCache(loginSvc, clock, cfg.AFIP.RefreshMargin, log.Component("token_cache"))
	issueUC := billing.NewIssueInvoiceUseCase(registry, tokens, wsfe, receivers, pdfGenerator, store, clock,
		billing.IssueConfig{RequestTimeout: cfg.AFIP.RequestTimeout, PublicPath: cfg.PDF.PublicPath},
		log.Component("facturacion"))
	statusUC := billing.NewStatusUseCase(registry, tokens, wsfe, billing.EndpointInfo{
		Environment: cfg.AFIP.Environment,
		WSAAURL:     wsaaURL,
		WSFEURL:     wsfeURL,
	}, log.Component("admin"))

	if cfg.Admin.JWTSecret == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET vacío: /limpiar_cache queda sin autenticación")
	}
	log.Info().Strs("emisores", registry.CUITs()).Str("wsaa", wsaaURL).Str("wsfe", wsfeURL).Msg("AFIP configurada")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturador AFIP",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		IssueUC:   issueUC,
		PDFUC:     billing.NewPDFUseCase(store),
		StatusUC:  statusUC,
		JWTSecret: cfg.Admin.JWTSecret,
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
