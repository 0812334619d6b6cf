package main

import (
	"flag"
	"fmt"
	"os"

	zlog "github.com/rs/zerolog/log"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/config"
	"github.com/peterkuimelis/tcgadvisor/internal/web"
)

func main() {
	configFile := flag.String("config", "", "path to config YAML (defaults apply when empty)")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.HTTPPort = *port
	}
	zlog.Logger = cfg.Log.NewLogger(os.Stderr)

	svc, err := advisor.FromConfig(cfg, zlog.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	srv := web.NewServer(svc, cfg.Scenarios, zlog.Logger)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	zlog.Info().Msgf("tcgadvisor API listening on http://localhost:%d", cfg.Server.HTTPPort)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
