package restapi

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"

	"github.com/sailhq/sailpost/assets"
	"github.com/sailhq/sailpost/internal/docgen"
	"github.com/sailhq/sailpost/internal/svc/applicantsvc"
	"github.com/sailhq/sailpost/internal/svc/dispatchsvc"
	"github.com/sailhq/sailpost/pkg/mailclient"
	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/pkg/validator"
	"github.com/sailhq/sailpost/transport/restapi/handlerapplicant"
	"github.com/sailhq/sailpost/transport/restapi/handlerdoc"
	"github.com/sailhq/sailpost/transport/restapi/handlerhealth"
	"github.com/sailhq/sailpost/transport/restapi/handlermail"
)

type Config struct {
	AppServiceName   string               `validate:"required"`
	AppVersion       string               `validate:"required"`
	JWTSecret        string               `validate:"required"`
	ApplicantService applicantsvc.Service `validate:"required"`
	DispatchService  dispatchsvc.Service  `validate:"required"`
	Mailer           mailclient.Client    `validate:"required"`
	Assets           docgen.AssetStore    `validate:"required"`
}

type DefaultHTTP struct {
	router *chi.Mux
}

func NewHTTPTransport(cfg Config) (*DefaultHTTP, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("http transport cfg error: %w", err)
	}

	handlerMail, err := handlermail.NewHandler(handlermail.HandlerConfig{
		DispatchService: cfg.DispatchService,
	})
	if err != nil {
		return nil, err
	}

	handlerDoc, err := handlerdoc.NewHandler(handlerdoc.HandlerConfig{
		DispatchService: cfg.DispatchService,
	})
	if err != nil {
		return nil, err
	}

	handlerHealth, err := handlerhealth.NewHandler(handlerhealth.HandlerConfig{
		Assets: cfg.Assets,
		Mailer: cfg.Mailer,
	})
	if err != nil {
		return nil, err
	}

	handlerApplicant, err := handlerapplicant.NewHandler(handlerapplicant.HandlerConfig{
		ApplicantService: cfg.ApplicantService,
	})
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	skip := func(r *http.Request) bool {
		switch strings.TrimSpace(path.Clean(r.URL.Path)) {
		case "/api/v1/health",
			"/ping":
			return true
		}

		return false
	}

	router.Use(middleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Use(func(next http.Handler) http.Handler {
		return tracer.Middleware(tracer.MiddlewareConfig{
			TracerName:     "github.com/sailhq/sailpost",
			ServiceName:    assets.ServiceName,
			SkipFunc:       skip,
			TracerProvider: otel.GetTracerProvider(),    // global tracer provider
			TextPropagator: otel.GetTextMapPropagator(), // use global text map propagator
		}, next)
	})

	// add trace id and also log request response
	router.Use(func(next http.Handler) http.Handler {
		return requestLogger(skip, next)
	})

	router.Get("/api/v1/health", handlerHealth.Health())

	// Test endpoints stay open so a deployment can be diagnosed before any
	// account exists.
	router.Route("/api/v1/test", func(r chi.Router) {
		r.Post("/pdf", handlerDoc.TestPDF())
		r.Post("/email", handlerMail.TestEmail())
	})

	// Resource: emails
	router.Route("/api/v1/emails", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return bearerAuth(cfg.JWTSecret, next)
		})

		r.Post("/", handlerMail.SendEmail())          // send one email
		r.Post("/bulk", handlerMail.SendBulkEmails()) // windowed bulk send
	})

	// Resource: applicants
	router.Route("/api/v1/applicants", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return bearerAuth(cfg.JWTSecret, next)
		})

		r.Post("/", handlerApplicant.CreateApplicant())
		r.Get("/", handlerApplicant.ListApplicants())
		r.Get("/{id}", handlerApplicant.GetApplicant())
		r.Put("/{id}/status", handlerApplicant.UpdateStatus())
		r.Delete("/{id}", handlerApplicant.DelApplicant())
	})

	instance := &DefaultHTTP{
		router: router,
	}

	return instance, nil
}

// Server .
func (a *DefaultHTTP) Server() http.Handler {
	return a.router
}
