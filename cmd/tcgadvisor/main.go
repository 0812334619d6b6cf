package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	zlog "github.com/rs/zerolog/log"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/config"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
	tcgnet "github.com/peterkuimelis/tcgadvisor/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "simulate":
		err = runSimulate(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "ask":
		err = runAsk(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  tcgadvisor simulate [--config FILE] [--scenario N | --hand A,B --field C --enemy D] [--mode M] [--json]")
	fmt.Println("  tcgadvisor serve [--config FILE] [--port P]")
	fmt.Println("  tcgadvisor ask [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate  Recommend plays for one board and print the trace")
	fmt.Println("  serve     Start the TCP advisor server")
	fmt.Println("  ask       Connect to an advisor server with an interactive prompt")
}

// setup loads the config and installs the global logger.
func setup(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	zlog.Logger = cfg.Log.NewLogger(os.Stderr)
	return cfg, nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	configFile := fs.String("config", "", "path to config YAML (defaults apply when empty)")
	scenario := fs.Int("scenario", 0, "scenario number to run (from the scenarios file)")
	hand := fs.String("hand", "", "comma-separated card names in hand")
	field := fs.String("field", "", "comma-separated card names on your field")
	enemy := fs.String("enemy", "", "comma-separated card names on the opponent's field")
	mode := fs.String("mode", "", "scoring mode override: pure, enemy or feature_learning")
	asJSON := fs.Bool("json", false, "print the result as JSON instead of the trace")
	fs.Parse(args)

	cfg, err := setup(*configFile)
	if err != nil {
		return err
	}
	svc, err := advisor.FromConfig(cfg, zlog.Logger)
	if err != nil {
		return err
	}

	req := advisor.Request{
		InitialHand: splitNames(*hand),
		UserField:   splitNames(*field),
		EnemyCards:  splitNames(*enemy),
	}
	if *scenario > 0 {
		sc, err := advisor.ScenarioByNumber(cfg.Scenarios, *scenario)
		if err != nil {
			return err
		}
		fmt.Printf("Scenario %d: %s\n", *scenario, sc.Name)
		req = sc.Request()
	}
	if *mode != "" {
		req.Mode = *mode
	}

	if *asJSON {
		res, err := svc.Recommend(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	res, err := svc.Stream(ctx, req, log.NewTextLogger(os.Stdout))
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func printResult(res engine.Result) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	n := 0
	for _, st := range res.Steps {
		if st.IsTerminal() {
			fmt.Println(st.Message)
			continue
		}
		n++
		fmt.Printf("%d. %s [%s] NA %.1f", n, st.PlayedCard, st.Type, st.NAValue)
		if st.Position != "" {
			fmt.Printf(" in %s position", st.Position)
		}
		if st.Target != "" {
			fmt.Printf(", targeting %s", st.Target)
		}
		fmt.Println()
	}
	fmt.Println("═══════════════════════════════════")
	if res.Metrics != nil {
		fmt.Printf("rounds %d, expanded %d, skipped %d, %s\n",
			res.Metrics.Rounds, res.Metrics.Expanded, res.Metrics.Skipped, res.Metrics.Duration)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile := fs.String("config", "", "path to config YAML (defaults apply when empty)")
	port := fs.Int("port", 0, "TCP port to listen on (overrides config)")
	fs.Parse(args)

	cfg, err := setup(*configFile)
	if err != nil {
		return err
	}
	if *port > 0 {
		cfg.Server.TCPPort = *port
	}
	svc, err := advisor.FromConfig(cfg, zlog.Logger)
	if err != nil {
		return err
	}

	srv := &tcgnet.Server{
		Advisor: svc,
		Port:    strconv.Itoa(cfg.Server.TCPPort),
		Logger:  zlog.Logger,
	}
	return srv.Run(ctx)
}

func runAsk(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "advisor server address")
	fs.Parse(args)

	return tcgnet.Connect(ctx, *addr)
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
