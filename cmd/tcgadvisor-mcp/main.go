package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	zlog "github.com/rs/zerolog/log"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/config"
	tcgmcp "github.com/peterkuimelis/tcgadvisor/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to config YAML (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the MCP protocol
	zlog.Logger = cfg.Log.NewLogger(os.Stderr)

	svc, err := advisor.FromConfig(cfg, zlog.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("tcgadvisor", "1.0.0")
	tcgmcp.NewTools(svc, cfg.Scenarios).RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
