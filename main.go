package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mangaalertitalia/web/clients"
	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/handlers"
	"github.com/mangaalertitalia/web/metrics"
)

var (
	pages    *handlers.Renderer
	counters *metrics.Metrics
)

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	counters = metrics.New(reg)

	var err error
	pages, err = handlers.NewRenderer()
	if err != nil {
		slog.Error("failed to parse page templates", "error", err)
		os.Exit(1)
	}

	client, err := clients.NewHTTPClient(config.Config.ProxyURL, config.Config.RequestTimeout)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}
	notifications := clients.NewNotificationClient(logger, client, clients.Endpoints{
		Subscribe:           config.Config.SubscribeEndpoint,
		UnsubscribeTemplate: config.Config.UnsubscribeEndpointTemplate,
	}, counters)

	subscriptions := handlers.NewSubscriptionHandler(logger, config.Config.Catalog, notifications, counters, config.Config.DefaultLanguage)
	unsubscriptions := handlers.NewUnsubscribeHandler(logger, notifications, counters, config.Config.DefaultLanguage)
	info := handlers.NewInfoHandler(config.Config.Catalog, config.Config.DefaultLanguage)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", public(subscriptions.ShowForm))
	mux.HandleFunc("POST /{$}", public(subscriptions.Subscribe))
	mux.HandleFunc("GET /unsubscribe", public(unsubscriptions.Unsubscribe))
	mux.HandleFunc("GET /informazioni", public(info.ShowInfo))

	mux.HandleFunc("GET /healthz", public(handlers.Health))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("/", public(info.NotFound))

	server := &http.Server{
		Addr:              config.Config.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("Starting server", "addr", config.Config.ListenAddr, "catalog", config.Config.Catalog)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

func public(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		slog.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		counters.ObserveRequest(r.Pattern, res.Code)
		writeResult(w, res)
	}
}

func writeResult(w http.ResponseWriter, res handlers.Result) {
	if res.Code == http.StatusInternalServerError {
		slog.Error("internal error", "error", res.Error)
	}

	if res.Page != "" {
		var buf bytes.Buffer
		if err := pages.Render(&buf, res.Page, res.Body); err != nil {
			slog.Error("failed to render page", "page", res.Page, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(res.Code)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Debug("failed to write page", "page", res.Page, "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Code)
	if res.Body != nil {
		if err := json.NewEncoder(w).Encode(res.Body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}
