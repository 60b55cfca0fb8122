// Пакет app - корень сборки киоска: конфигурация -> хранилище профиля ->
// контекст клиента -> сценарии страниц -> HTTP.
package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/foodorder/config"
	"github.com/Gunvolt24/foodorder/internal/activity"
	"github.com/Gunvolt24/foodorder/internal/apiclient"
	"github.com/Gunvolt24/foodorder/internal/appctx"
	cachemem "github.com/Gunvolt24/foodorder/internal/cache/memory"
	"github.com/Gunvolt24/foodorder/internal/navigation"
	"github.com/Gunvolt24/foodorder/internal/notify"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/internal/routes"
	rest "github.com/Gunvolt24/foodorder/internal/transport/http"
	"github.com/Gunvolt24/foodorder/internal/usecase"
	"github.com/Gunvolt24/foodorder/pkg/logger"
	"github.com/Gunvolt24/foodorder/pkg/metrics"
	"github.com/Gunvolt24/foodorder/pkg/telemetry"
	"github.com/Gunvolt24/foodorder/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App - собранный киоск.
type App struct {
	Logger          ports.Logger    // логгер
	HTTPServer      *http.Server    // HTTP-сервер страниц
	Client          *appctx.Context // состояние профиля
	gracefulTimeout time.Duration   // время ожидания завершения HTTP-сервера
}

// Cleanup - функция освобождения ресурсов.
type Cleanup func()

// applyGinMode - устанавливает режим Gin по строке;
// неизвестное значение -> debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap - собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, cfg.Profile)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию - no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Profile:     cfg.Profile,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	policy, err := routes.Default()
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	kv, closeStore, err := OpenStore(ctx, cfg.Storage, cfg.Profile, logg)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}
	client := appctx.New(ctx, cfg.Profile, kv, logg, appctx.WithCloser(closeStore))

	// Активность: без брокера эмиттер выключен.
	var sink ports.ActivitySink
	if cfg.Activity.Enabled {
		sink = activity.NewKafkaSink(&activity.KafkaConfig{
			Brokers:      cfg.Activity.Brokers,
			Topic:        cfg.Activity.Topic,
			BatchTimeout: cfg.Activity.BatchTimeout,
		}, logg)
		logg.Infof(ctx, "activity events enabled topic=%s brokers=%v", cfg.Activity.Topic, cfg.Activity.Brokers)
	}
	emitter := activity.NewEmitter(sink, cfg.Profile, cfg.Activity.WriteTimeout, logg)

	toasts := notify.NewToaster(cfg.UI.ToastLimit, logg)
	service := usecase.NewService(usecase.Deps{
		App:       client,
		API:       apiclient.New(apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, client.Session.Token, logg),
		Cache:     cachemem.NewMenuCache(cfg.Cache.Capacity, cfg.Cache.TTL),
		Notifier:  toasts,
		Navigator: navigation.NewNavigator(logg),
		Policy:    policy,
		Validator: validate.NewMenuItemValidator(),
		Activity:  emitter,
		Log:       logg,
	})

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(service, toasts, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(handler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Client:          client,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := emitter.Close(); err != nil {
			logg.Warnf(ctx, "activity sink close error: %v", err)
		}
		if err := client.Close(); err != nil {
			logg.Warnf(ctx, "client context close error: %v", err)
		}
		closeLogger()
	}

	return app, cleanup, nil
}

// Run - запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "kiosk http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if a.Client != nil && a.Client.Busy.IsBusy() {
		a.Logger.Warnf(ctx, "stopping with %d operations in flight", a.Client.Busy.Active())
	}

	a.Logger.Infof(ctx, "kiosk stopped")
	return runErr
}
