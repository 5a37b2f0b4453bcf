package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/tiffin/internal/api"
	"github.com/mmcdole/tiffin/internal/config"
	"github.com/mmcdole/tiffin/internal/connectivity"
	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/filter"
	"github.com/mmcdole/tiffin/internal/log"
	"github.com/mmcdole/tiffin/internal/source/github"
	"github.com/mmcdole/tiffin/internal/source/swiggy"
	"github.com/mmcdole/tiffin/internal/styles"
	"github.com/mmcdole/tiffin/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type options struct {
	configPath string
	offline    bool
	serve      bool
	search     string
	topRated   bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.BoolVar(&opts.offline, "offline", false, "pretend the network is down")
	flag.BoolVar(&opts.serve, "serve", false, "serve the listing over HTTP instead of the TUI")
	flag.StringVar(&opts.search, "search", "", "initial search (plain output only)")
	flag.BoolVar(&opts.topRated, "top-rated", false, "show only top rated restaurants (plain output only)")
	flag.Parse()

	if showVersion {
		fmt.Printf("tiffin %s\n", Version)
		return
	}

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, args []string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting tiffin", "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		switch args[0] {
		case "profile":
			if len(args) < 2 {
				return errors.New("usage: tiffin profile <login>")
			}
			return runProfile(ctx, cfg, args[1], logger)
		default:
			return fmt.Errorf("unknown command %q", args[0])
		}
	}

	monitor, probe := newMonitor(cfg, opts.offline, logger)

	var changes chan tui.StateChange
	observers := controller.MultiObserver{controller.NewLogObserver(logger)}
	interactive := !opts.serve && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		changes = make(chan tui.StateChange, 8)
		observers = append(observers, tui.NewChannelObserver(changes))
	}

	source := swiggy.NewClient(cfg.Source, logger)
	ctrl := controller.New(source, monitor, controller.Options{
		Threshold:          &cfg.Controller.TopRatedThreshold,
		Matcher:            filter.MatcherFor(cfg.Search.Mode),
		Label:              cfg.Controller.VegLabel,
		RefetchOnReconnect: cfg.Controller.RefetchOnReconnect,
		Observer:           observers,
		Logger:             logger,
	})
	defer ctrl.OnStop()

	switch {
	case opts.serve:
		return runServer(ctx, cfg, ctrl, probe, logger)
	case interactive:
		return runTUI(ctx, cfg, ctrl, probe, changes, logger)
	default:
		return runPlain(ctx, ctrl, opts)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

// newMonitor returns the connectivity monitor and, when one is used, the
// probe behind it.
func newMonitor(cfg *config.Config, offline bool, logger *slog.Logger) (domain.ConnectivityMonitor, *connectivity.Probe) {
	if offline {
		return connectivity.Static(false), nil
	}
	c := cfg.Connectivity
	probe := connectivity.NewProbe(c.ProbeAddr, c.ProbeTimeout, c.ProbeInterval, logger)
	// First answer before any render; Online itself never dials
	probe.Refresh()
	return probe, probe
}

func runTUI(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, probe *connectivity.Probe, changes chan tui.StateChange, logger *slog.Logger) error {
	uiOpts := tui.Options{
		Columns:      cfg.UI.GridColumns,
		CardWidth:    cfg.UI.CardWidth,
		ImageBaseURL: cfg.Source.ImageBaseURL,
		StateChanges: changes,
		Logger:       logger,
	}
	if probe != nil {
		uiOpts.Probe = probe
		uiOpts.ProbeInterval = probe.Interval()
	}

	model := tui.NewModel(ctx, ctrl, uiOpts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPlain fetches once and prints the listing for pipes and scripts
func runPlain(ctx context.Context, ctrl *controller.Controller, opts options) error {
	if err := ctrl.OnStart(ctx); err != nil {
		// The failure is part of the rendered output
		slog.Warn("listing fetch failed", "error", err)
	}
	switch {
	case opts.topRated:
		ctrl.TriggerTopRatedFilter()
	case opts.search != "":
		ctrl.SetSearchQuery(opts.search)
	}
	if err := tui.WritePlain(os.Stdout, ctrl); err != nil {
		return err
	}
	if ctrl.State() == controller.StateFailed {
		return errors.New("could not load restaurants")
	}
	return nil
}

func runServer(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, probe *connectivity.Probe, logger *slog.Logger) error {
	if probe != nil {
		go probe.Run(ctx)
	}

	h := api.NewHandler(ctx, ctrl, cfg.Source.ImageBaseURL, logger)
	go func() {
		if err := h.Load(); err != nil {
			logger.Warn("initial listing fetch failed", "error", err)
		}
	}()

	srv := api.NewServer(cfg.Server, h, logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()
	fmt.Printf("Serving on %s\n", cfg.Server.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

// runProfile fetches and prints one user card
func runProfile(ctx context.Context, cfg *config.Config, login string, logger *slog.Logger) error {
	client := github.NewClient(cfg.Profile, logger)

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	var profile *domain.Profile
	var err error
	if isTTY {
		profile, err = fetchProfileWithSpinner(ctx, client, login)
	} else {
		profile, err = client.FetchProfile(ctx, login)
	}
	if err != nil {
		return err
	}

	if !isTTY {
		return tui.WritePlainProfile(os.Stdout, *profile)
	}

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = min(w, 60)
	}
	fmt.Println(tui.RenderProfile(*profile, width))
	return nil
}

// fetchProfileWithSpinner fetches the profile with a visual spinner
func fetchProfileWithSpinner(ctx context.Context, client *github.Client, login string) (*domain.Profile, error) {
	type result struct {
		profile *domain.Profile
		err     error
	}
	resultCh := make(chan result, 1)

	go func() {
		p, err := client.FetchProfile(ctx, login)
		resultCh <- result{p, err}
	}()

	frame := 0
	fmt.Printf("\r%s Fetching %s...", styles.SpinnerFrames[frame], login)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			return res.profile, res.err
		case <-ticker.C:
			frame = (frame + 1) % len(styles.SpinnerFrames)
			fmt.Printf("\r%s Fetching %s...", styles.SpinnerFrames[frame], login)
		}
	}
}
