// cmd/conclave/main.go
//
// This is the entry point for the Conclave CLI.
//
// Modes:
//  1. No flags: launch the interactive dashboard (TUI)
//  2. -scope / -request: run one review and print the verdict
//  3. -status: print the swarm status snapshot
//  4. -serve: expose the swarm over HTTP until interrupted
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/agents"
	"github.com/ostraca/conclave/internal/config"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/internal/httpapi"
	"github.com/ostraca/conclave/internal/logbook"
	"github.com/ostraca/conclave/internal/logging"
	"github.com/ostraca/conclave/internal/orchestrator"
	"github.com/ostraca/conclave/internal/tui"
)

func main() {
	scopeFlag := flag.String("scope", "", "run a single review for the given scope and exit")
	requestFlag := flag.String("request", "", "run the review described by a YAML request file and exit")
	statusFlag := flag.Bool("status", false, "print the swarm status snapshot and exit")
	serveFlag := flag.Bool("serve", false, "serve the review API over HTTP until interrupted")
	flag.Parse()

	if err := run(*scopeFlag, *requestFlag, *statusFlag, *serveFlag); err != nil {
		fmt.Fprintf(os.Stderr, "conclave: %v\n", err)
		os.Exit(1)
	}
}

func run(scope, requestPath string, status, serve bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if err := config.InitConclaveDir(cwd); err != nil {
		return fmt.Errorf("initialize %s directory: %w", config.ConclaveDir, err)
	}
	cfg, err := config.New(cwd)
	if err != nil {
		return err
	}

	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "journey.log"))
	if err != nil {
		return fmt.Errorf("open logbook: %w", err)
	}

	brain, err := buildSwarm(cfg, lb)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := brain.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize swarm: %w", err)
	}
	defer brain.Shutdown(context.Background())

	switch {
	case status:
		return printStatus(brain)
	case scope != "":
		parsed, err := governance.ParseScope(scope)
		if err != nil {
			return err
		}
		return runReview(ctx, cfg, brain, governance.NewRequest(parsed))
	case requestPath != "":
		req, err := governance.LoadRequest(requestPath)
		if err != nil {
			return err
		}
		return runReview(ctx, cfg, brain, req)
	case serve:
		return serveAPI(ctx, cfg, brain)
	default:
		return runDashboard(cfg, brain, lb)
	}
}

// buildSwarm assembles the orchestrator and its evaluator roster from the
// project configuration. Unconfigured domains are simply not staffed; the
// generic evaluator always joins so custom rule packs run regardless of scope
// configuration.
func buildSwarm(cfg *config.Config, lb *logbook.Logbook) (*orchestrator.Brain, error) {
	wanted := configuredDomains(cfg)
	brain := orchestrator.NewBrain(lb,
		orchestrator.WithHealthThreshold(cfg.HealthThreshold()),
		orchestrator.WithMaxParallel(cfg.MaxParallel()),
		orchestrator.WithRequiredDomains(wanted...),
	)
	for _, core := range agents.Builtins(agent.WithLogbook(lb)) {
		if !containsDomain(wanted, core.Domain()) {
			continue
		}
		if err := brain.Register(core.Domain(), core); err != nil {
			return nil, err
		}
	}
	generic := agents.NewGeneric(cfg.RulesDir(), agent.WithLogbook(lb))
	if err := brain.Register(generic.Domain(), generic); err != nil {
		return nil, err
	}
	return brain, nil
}

func configuredDomains(cfg *config.Config) []governance.Domain {
	raw := cfg.Domains()
	if len(raw) == 0 {
		return governance.Domains()
	}
	var domains []governance.Domain
	for _, value := range raw {
		domains = append(domains, governance.Domain(strings.TrimSpace(value)))
	}
	return domains
}

func containsDomain(domains []governance.Domain, domain governance.Domain) bool {
	for _, d := range domains {
		if d == domain {
			return true
		}
	}
	return false
}

func runReview(ctx context.Context, cfg *config.Config, brain *orchestrator.Brain, req governance.Request) error {
	resp, err := brain.Review(ctx, req)
	if err != nil {
		return err
	}
	printResponse(resp)
	if path, err := saveResponse(cfg, resp); err == nil {
		fmt.Printf("\nSaved: %s\n", path)
	}
	return nil
}

func printResponse(resp governance.Response) {
	fmt.Println(resp.Summary)
	if len(resp.NextSteps) > 0 {
		fmt.Println("\nNext Steps:")
		for i, step := range resp.NextSteps {
			fmt.Printf("%d. %s\n", i+1, step)
		}
	}
	fmt.Printf("\nEvaluators: %d · Processing time: %s\n", len(resp.AgentsUsed), resp.ProcessingTime)
}

// saveResponse archives the synthesized verdict under .conclave/requests so a
// review can be inspected after the terminal session ends.
func saveResponse(cfg *config.Config, resp governance.Response) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", err
	}
	path := filepath.Join(cfg.ConclaveProjectDir, "requests", resp.RequestID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func printStatus(brain *orchestrator.Brain) error {
	data, err := yaml.Marshal(brain.SwarmStatus())
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func serveAPI(ctx context.Context, cfg *config.Config, brain *orchestrator.Brain) error {
	logger, err := logging.New(cfg.ProjectDir)
	if err != nil {
		return err
	}
	defer logger.Close()

	settings := httpapi.SettingsFromConfig(cfg)
	settings.Enabled = true
	server := httpapi.NewServer(settings, brain, httpapi.WithLogger(logger))
	if err := server.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Serving review API on %s\n", server.BaseURL())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	fmt.Println("Shutting down...")
	return server.Shutdown(context.Background())
}

func runDashboard(cfg *config.Config, brain *orchestrator.Brain, lb *logbook.Logbook) error {
	p := tea.NewProgram(
		tui.NewApp(cfg, brain, lb),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
