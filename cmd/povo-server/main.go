package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/y3s-labs/povo/config"
	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/flow"
	"github.com/y3s-labs/povo/genai"
	"github.com/y3s-labs/povo/logging"
	"github.com/y3s-labs/povo/nlu"
	"github.com/y3s-labs/povo/orchestrator"
	"github.com/y3s-labs/povo/router"
	"github.com/y3s-labs/povo/server"
	"github.com/y3s-labs/povo/session"
	"github.com/y3s-labs/povo/telemetry"
)

func main() {
	cfg := config.Load()
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; provider calls will fail until provided")
	}

	intentModel, err := nlu.LoadIntentModel(cfg.IntentModelPath)
	if err != nil {
		log.Fatalf("load intent model: %v", err)
	}

	r := router.New()
	r.RegisterMany(intentModel.Routing())
	if intentModel.DefaultFlow != "" {
		r.SetDefaultFlow(intentModel.DefaultFlow)
	}

	flows := flow.NewRegistry()
	flows.MustRegister(flow.NewGeneral(), flow.NewPizza(), flow.NewBooking())

	classifier := nlu.NewOpenAIClassifier(intentModel, func(o *nlu.Options) {
		o.Model = cfg.ClassifierModel
	})

	var generator core.Generator
	switch cfg.GeneratorProvider {
	case "anthropic":
		generator = genai.NewAnthropicGenerator(func(o *genai.AnthropicOptions) {
			o.APIKey = cfg.AnthropicAPIKey
			if cfg.GeneratorModel != "" {
				o.Model = anthropic.Model(cfg.GeneratorModel)
			}
		})
	default:
		generator = genai.NewOpenAIGenerator(func(o *genai.OpenAIOptions) {
			if cfg.GeneratorModel != "" {
				o.Model = cfg.GeneratorModel
			}
		})
	}

	sessions := session.NewInMemoryStore(func(o *session.Options) {
		o.MaxMessages = cfg.MaxHistoryMessages
	})
	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	orch, err := orchestrator.New(classifier, generator, r, flows, func(o *orchestrator.Options) {
		o.ClassifyTimeout = cfg.ClassifyTimeout
		o.GenerateTimeout = cfg.GenerateTimeout
		o.MaxExternalCalls = cfg.MaxExternalCalls
		o.SessionStore = sessions
		o.Logger = logger
		o.Metrics = metrics
	})
	if err != nil {
		log.Fatalf("wire orchestrator: %v", err)
	}

	srv := server.New(orch, sessions, func(o *server.Options) {
		o.AllowedOrigin = cfg.AllowedOrigin
		o.RateRPS = cfg.RateRPS
		o.RateBurst = cfg.RateBurst
		o.Logger = logger
	})

	httpSrv := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("povo server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
	}
}
