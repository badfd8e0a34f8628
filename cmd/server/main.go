package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/dpup/prefab"
	"github.com/dpup/prefab/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/dpup/postmile/server/api/v1"
	"github.com/dpup/postmile/server/internal/cache"
	"github.com/dpup/postmile/server/internal/config"
	"github.com/dpup/postmile/server/internal/dataset"
	"github.com/dpup/postmile/server/internal/export"
	"github.com/dpup/postmile/server/internal/services"
)

func main() {
	// Load configuration using Prefab's config system
	appConfig := loadConfig()

	// Background workers log through ctx, which has no request logger
	ctx := logging.EnsureLogger(context.Background())

	cacheInstance := cache.NewCache()
	if appConfig.Segments.CleanupInterval > 0 {
		cacheInstance.StartPeriodicCleanup(ctx, appConfig.Segments.CleanupInterval)
	}

	store := dataset.NewStore(appConfig.Segments.DataDir, cacheInstance, appConfig.Segments.CacheTTL)
	exporter := export.NewExporter(appConfig.Segments.OutputDir, appConfig.Segments.ExportFormats)

	segmentsService := services.NewSegmentsService(store, exporter, appConfig.Segments.Options())

	log.Printf("Postmile segment server starting")
	log.Printf("Data directory: %s", appConfig.Segments.DataDir)
	log.Printf("Output directory: %s", appConfig.Segments.OutputDir)
	if appConfig.Segments.MaxFragmentDistance > 0 {
		log.Printf("Dropping fragments farther than %g from boundary markers", appConfig.Segments.MaxFragmentDistance)
	}

	// Keep busy routes parsed ahead of the first request
	preload := services.NewPreloadService(store, appConfig.Segments.PreloadKeys(), appConfig.Segments.Preload.Interval)
	preload.Start(ctx)
	defer preload.Stop()

	// Server configuration (port, etc.) will be loaded from prefab.yaml/env vars
	server := prefab.New(
		prefab.WithGRPCReflection(),
		prefab.WithHTTPHandlerFunc("/metrics", promhttp.Handler().ServeHTTP),
		prefab.WithHTTPHandlerFunc("/", homepageHandler),
	)

	api.RegisterSegmentServiceServer(server.ServiceRegistrar(), segmentsService)

	if err := api.RegisterSegmentServiceHandlerFromEndpoint(server.GatewayArgs()); err != nil {
		log.Fatalf("Failed to register Segment service gateway: %v", err)
	}

	// Start the server (blocks until shutdown)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadConfig loads configuration using Prefab's config system
// Configuration is loaded from prefab.yaml and environment variables with PF__ prefix
func loadConfig() *config.Config {
	appConfig := config.DefaultConfig()

	if err := prefab.Config.Unmarshal("segments", &appConfig.Segments); err != nil {
		log.Fatalf("Failed to unmarshal segments section: %v", err)
	}

	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return appConfig
}

// homepageHandler serves a simple HTML homepage at the server root
func homepageHandler(w http.ResponseWriter, r *http.Request) {
	// Only handle the root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>postmile</title>
    <style>
        body {
            font-family: 'Courier New', Consolas, monospace;
            background: #000;
            color: #0f0;
            padding: 20px;
            line-height: 1.4;
        }
        a { color: #0ff; text-decoration: none; }
        a:hover { text-decoration: underline; }
        pre { margin: 0; }
        .header { color: #ff0; }
    </style>
</head>
<body>
<pre>
<span class="header">postmile</span>

Extracts highway segments between two Caltrans postmiles from route
geometry and postmile marker datasets.

<span class="header">API Endpoints:</span>

  <a href="/api/v1/routes">GET  /api/v1/routes</a>
        - Route catalog by district, county, route and direction
  GET  /api/v1/routes/{district}/{county}/{route}/{direction}
        - Postmile extent and dataset size of one route
  GET  /api/v1/routes/{district}/{county}/{route}/{direction}/segment?start_pm=&end_pm=
        - Segment geometry between two postmiles
  POST /api/v1/routes/{district}/{county}/{route}/{direction}/segment:export
        - Write the segment as GeoJSON, KML or zip

<span class="header">Example Usage:</span>
  curl <a href="/api/v1/routes/12/ORA/5/NB/segment?start_pm=3.2&end_pm=8.7">/api/v1/routes/12/ORA/5/NB/segment?start_pm=3.2&amp;end_pm=8.7</a>

<span class="header">Metrics:</span>
  <a href="/metrics">/metrics</a>
</pre>
</body>
</html>`

	if _, err := fmt.Fprint(w, html); err != nil {
		slog.Error("Failed to write homepage HTML", "error", err)
	}
}
