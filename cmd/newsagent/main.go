package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"newsagent/internal/app"
	"newsagent/internal/config"
	"newsagent/internal/logger"
	"newsagent/internal/metrics"
	"newsagent/internal/profile"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer(cfg.MonitoringPort)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}
	defer a.Close()

	// Profile via env for the one-shot console run; an interactive surface
	// would call Session().SetProfile instead.
	sess := a.Session()
	sess.SetProfile(profile.Profile{
		Name:         os.Getenv("PROFILE_NAME"),
		Role:         os.Getenv("PROFILE_ROLE"),
		Interests:    profile.ParseInterests(os.Getenv("PROFILE_INTERESTS")),
		ReadingLevel: os.Getenv("PROFILE_READING_LEVEL"),
		Country:      os.Getenv("PROFILE_COUNTRY"),
	})
	sess.SetExcludeKeywords(os.Getenv("EXCLUDE_KEYWORDS"))

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run error: %v", err)
	}
}

func startMonitoringServer(port string) {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
