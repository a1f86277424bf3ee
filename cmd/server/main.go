// Package main provides the sun angles API HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	httpHandler "go.ngs.io/sun-angles/internal/http"
	"go.ngs.io/sun-angles/internal/log"
	"go.ngs.io/sun-angles/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("sun-angles version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	clockName := getEnv("SOLAR_CLOCK", "mean")
	sitesPath := getEnv("SITES_PATH", "")
	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	if err := log.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err := run(port, clockName, sitesPath)
	if err != nil {
		log.Errorf("%v", err)
	}
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run loads the configuration and serves the API until the listener fails.
func run(port, clockName, sitesPath string) error {
	log.Infow("starting sun angles API server", "version", version, "port", port, "clock", clockName)

	// Load named sites (optional).
	var sites *usecase.SiteCatalog
	if sitesPath != "" {
		var err error
		sites, err = usecase.LoadSiteCatalog(sitesPath)
		if err != nil {
			return fmt.Errorf("failed to load sites: %w", err)
		}
		log.Infow("site catalog loaded", "path", sitesPath, "sites", sites.Len())
	} else {
		log.Infof("Site lookup disabled (SITES_PATH not set)")
	}

	sunUC, err := usecase.NewSunUseCase(clockName, sites)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	router := httpHandler.SetupRouter(sunUC, log.GetZapLogger())

	addr := fmt.Sprintf(":%s", port)
	log.Infof("Server listening on %s", addr)
	log.Infof("Health check: http://localhost:%s/health", port)

	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Sun Angles API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  sun-angles [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  SOLAR_CLOCK             Solar time for UTC inputs: mean or apparent (default: mean)")
	fmt.Println("  SITES_PATH              JSON file of named sites [{name, lat, lon}] (optional)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  DEBUG                   Development logging when true (default: false)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  sun-angles")
	fmt.Println()
	fmt.Println("  # Apparent solar time on a custom port")
	fmt.Println("  PORT=3000 SOLAR_CLOCK=apparent sun-angles")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                    Health check")
	fmt.Println("  GET /v1/sun/position           Sun geometry at a point (lat/lon/time, site/time or lat/doy/hour)")
	fmt.Println("  GET /v1/sun/series             Zenith/azimuth series over a time window")
	fmt.Println("  GET /v1/sun/daylight           Daylight calendar for a latitude")
	fmt.Println("  GET /v1/sun/compare            Formula vs suncalc zenith statistics")
	fmt.Println()
}
