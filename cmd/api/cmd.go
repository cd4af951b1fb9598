package api

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitchellh/cli"
	"github.com/sailhq/sailpost/container"
	"github.com/sailhq/sailpost/pkg/respbuilder"
	"github.com/sailhq/sailpost/pkg/tracer"
	"github.com/sailhq/sailpost/transport/restapi"
	"github.com/satori/uuid"
	"github.com/yusufsyaifudin/ylog"
	jaegerPropagator "go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	ExitSuccess = 0
	ExitErr     = -1
)

type Cmd struct {
	flags          *flag.FlagSet
	appName        string
	appVersion     string
	configFile     string
	jaegerEndpoint string
}

func NewCmd(appName, appVersion string) func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{
			flags:      &flag.FlagSet{},
			appName:    appName,
			appVersion: appVersion,
		}
		err := cmd.init()
		return cmd, err
	}
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd("", "")

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.configFile, "config", "config.yml",
		"Config file to load")
	c.flags.StringVar(&c.configFile, "c", "config.yml",
		"Alias for config file to load")
	c.flags.StringVar(&c.jaegerEndpoint, "jaeger", "http://localhost:14268/api/traces",
		"Jaeger collector endpoint")
	return nil
}

func (c *Cmd) Help() string {
	return `API will start the applicant document and email dispatch HTTP server`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Printf("error parsing config argument: %s", err)
		return ExitErr
	}

	ctx := setupLog(context.Background())

	// ** load config file
	cfg, err := container.LoadConfig(c.configFile)
	if err != nil {
		ylog.Error(ctx, "cannot load config", ylog.KV("error", err))
		return ExitErr
	}

	respbuilder.SetProductionMode(cfg.Production)

	exp, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(c.jaegerEndpoint)),
	)
	if err != nil {
		ylog.Error(ctx, "cannot setup jaeger exporter", ylog.KV("error", err))
		return ExitErr
	}

	tracer.InitTraceProvider(exp)

	// register ot propagator
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		&ot.OT{},
		&jaegerPropagator.Jaeger{},
	))

	// ** setup repositories
	ylog.Info(ctx, "container preparation: starting")
	repositories, err := container.SetupRepositories(cfg.DatabaseResources)
	defer func() {
		ylog.Info(ctx, "closing container: starting")
		if repositories == nil {
			ylog.Info(ctx, "closing container: no need to close")
			return
		}

		if _err := repositories.Close(); _err != nil {
			ylog.Error(ctx, "closing container: failed", ylog.KV("error", _err))
		}

		ylog.Info(ctx, "closing container: done")
	}()

	if err != nil {
		ylog.Error(ctx, "container preparation: failed", ylog.KV("error", err))
		return ExitErr
	}

	ylog.Info(ctx, "container preparation: done")

	// ** START SERVICES using configured repositories
	ylog.Info(ctx, "services preparation: starting")
	services, err := container.SetupServices(cfg, repositories)
	defer func() {
		if services == nil {
			return
		}

		if _err := services.Close(); _err != nil {
			ylog.Error(ctx, "closing services: failed", ylog.KV("error", _err))
		}
	}()

	if err != nil {
		ylog.Error(ctx, "services preparation: failed", ylog.KV("error", err))
		return ExitErr
	}

	// ** HTTP TRANSPORT
	ylog.Info(ctx, "transport preparation: starting")
	serverConfig := restapi.Config{
		AppServiceName:   c.appName,
		AppVersion:       c.appVersion,
		JWTSecret:        cfg.JWTSecret,
		ApplicantService: services.Applicant(),
		DispatchService:  services.Dispatch(),
		Mailer:           services.Mailer(),
		Assets:           services.Assets(),
	}

	ylog.Info(ctx, "http transport: starting")
	server, err := restapi.NewHTTPTransport(serverConfig)
	if err != nil {
		ylog.Error(ctx, "http transport: failed", ylog.KV("error", err))
		return ExitErr
	}

	httpPort := fmt.Sprintf(":%d", cfg.Transport.HTTP.Port)
	h2s := &http2.Server{}
	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: h2c.NewHandler(server.Server(), h2s), // HTTP/2 Cleartext handler
	}

	var apiErrChan = make(chan error, 1)
	go func() {
		ylog.Info(ctx, fmt.Sprintf("http transport: done running on port %d", cfg.Transport.HTTP.Port))
		apiErrChan <- httpServer.ListenAndServe()
	}()

	ylog.Info(ctx, "system: up and running...")

	// ** listen for sigterm signal
	var signalChan = make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-signalChan:
		ylog.Info(ctx, "system: exiting...")
		ylog.Info(ctx, "http transport: exiting...")
		if _err := httpServer.Shutdown(ctx); _err != nil {
			ylog.Error(ctx, "http transport: ", ylog.KV("error", _err))
		}

	case err := <-apiErrChan:
		if err != nil {
			ylog.Info(ctx, "http transport: error", ylog.KV("error", err))
		}
	}

	return ExitSuccess
}

func (c *Cmd) Synopsis() string {
	return `API will start the applicant document and email dispatch HTTP server`
}

func setupLog(ctx context.Context) context.Context {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			MessageKey:     "msg",
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			LineEnding:     zapcore.DefaultLineEnding,
			LevelKey:       "level",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
		}),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), // pipe to multiple writer
		zapcore.DebugLevel,
	)

	zapLog := zap.New(core)

	propagateData := tracer.LogData{
		RemoteAddr: "system",
		TraceID:    uuid.NewV4().String(),
	}

	traceLog, err := ylog.NewTracer(propagateData, ylog.WithTag("tracer"))
	if err != nil {
		log.Fatalf("error prepare tracer system data: %s", err)
		return ctx
	}

	// inject context
	ctx = ylog.Inject(ctx, traceLog)

	// ** set global logger
	ylog.SetGlobalLogger(ylog.NewZap(zapLog))

	return ctx
}
