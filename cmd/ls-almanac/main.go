// Command ls-almanac prints positions, rise/set times and physical
// ephemerides of the Sun, Moon, planets and bright stars for an observing
// site, or browses them in a terminal UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/riseset"
	"github.com/litescript/ls-almanac/internal/ui"
	"github.com/litescript/ls-almanac/internal/version"
)

// CLI flags for headless mode
var (
	bodies        string
	dateArg       string
	jsonMode      bool
	tuiMode       bool
	passDays      int
	watchInterval time.Duration
)

const (
	minRefresh = 5 * time.Second
	maxRefresh = 10 * time.Minute
)

func main() {
	site := flag.String("site", "", "Observing site name (see -sites)")
	sitesFile := flag.String("sites", "", "YAML file of extra observing sites")
	lat := flag.Float64("lat", 0, "Site latitude in degrees, north positive")
	lon := flag.Float64("lon", 0, "Site longitude in degrees, east positive")
	elev := flag.Float64("elevation", 0, "Site elevation in meters")
	ephemMode := flag.String("ephem", "", "Ephemeris source (meeus, horizons, auto)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	refresh := flag.Duration("refresh", ui.DefaultRefreshInterval, "TUI refresh interval")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.StringVar(&bodies, "body", "", "Comma-separated targets (default: everything the ephemeris covers)")
	flag.StringVar(&dateArg, "date", "", "UT date (2006-01-02) or instant (RFC 3339); default now")
	flag.BoolVar(&jsonMode, "json", false, "Write JSON instead of text")
	flag.BoolVar(&tuiMode, "tui", false, "Start the terminal UI")
	flag.IntVar(&passDays, "days", 0, "List passes over this many days for each -body")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.UserAgent())
		return
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load(ctx)
	if err != nil {
		fatal(err)
	}

	// Flags override the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "site":
			cfg.Site = *site
		case "sites":
			cfg.SitesFile = *sitesFile
		case "lat":
			cfg.Latitude = lat
		case "lon":
			cfg.Longitude = lon
		case "elevation":
			cfg.Elevation = *elev
		case "ephem":
			cfg.Ephem = *ephemMode
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger := logging.New(cfg.Level())

	sites, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		fatal(err)
	}
	loc, err := cfg.Location(sites)
	if err != nil {
		fatal(err)
	}

	at, err := parseDate(dateArg, time.Now())
	if err != nil {
		fatal(err)
	}

	provider := newProvider(cfg, logger)
	solver := riseset.DefaultSolver()
	solver.MaxIterations = cfg.Iterations
	svc := almanac.NewService(provider,
		almanac.WithSolver(solver),
		almanac.WithLogger(logger.With("almanac")),
	)

	targets, err := resolveTargets(svc, bodies)
	if err != nil {
		fatal(err)
	}
	logger.Debug("site %s, %d targets, ephemeris %s", loc, len(targets), provider.Name())

	// Headless unless asked for the TUI or attached to a terminal with no
	// output flags.
	headless := jsonMode || bodies != "" || dateArg != "" || passDays > 0 || watchInterval > 0
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if !tuiMode && (headless || !isTTY) {
		runHeadless(ctx, svc, loc, targets, at, logger)
		return
	}

	*refresh = max(minRefresh, min(*refresh, maxRefresh))
	logger.SetOutput(io.Discard)
	loader := &ui.Loader{Service: svc, Site: loc, Targets: targets, Logger: logger.With("ui")}
	p := tea.NewProgram(ui.New(loader, *refresh), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newProvider builds the ephemeris chain for the configured mode. Catalog
// stars always come from the fixed provider.
func newProvider(cfg *config.Config, logger *logging.Logger) ephem.Provider {
	stars := ephem.NewFixedProvider(astro.DefaultStarCatalog())
	horizons := func() ephem.Provider {
		h := ephem.NewHorizonsProvider(
			ephem.WithBaseURL(cfg.HorizonsURL),
			ephem.WithLogger(logger.With("horizons")),
		)
		return ephem.NewCachingProvider(h, cfg.CacheTTL)
	}
	onFail := func(p ephem.Provider, target ephem.Target, err error) {
		logger.Warn("%s: %s failed, trying next source: %v", target.Name, p.Name(), err)
	}

	switch cfg.Mode() {
	case ephem.ModeHorizons:
		return ephem.NewChainProvider(nil, horizons(), stars)
	case ephem.ModeAuto:
		return ephem.NewChainProvider(onFail, horizons(), ephem.NewMeeusProvider(), stars)
	default:
		return ephem.NewChainProvider(nil, ephem.NewMeeusProvider(), stars)
	}
}

// resolveTargets parses a comma-separated target list. An empty list
// selects every catalog target the service's provider covers.
func resolveTargets(svc *almanac.Service, list string) ([]ephem.Target, error) {
	var out []ephem.Target
	if strings.TrimSpace(list) == "" {
		for _, t := range ephem.Targets {
			if svc.Provider().Available(t) {
				out = append(out, t)
			}
		}
		return out, nil
	}
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := svc.Resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// parseDate accepts a UT date, which selects the current time of day on
// that date, or a full RFC 3339 instant.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want 2006-01-02 or RFC 3339", s)
	}
	now = now.UTC()
	return d.Add(now.Sub(now.Truncate(24 * time.Hour))), nil
}

// runHeadless prints reports without starting the TUI.
func runHeadless(ctx context.Context, svc *almanac.Service, loc astro.GeoLocation, targets []ephem.Target, at time.Time, logger *logging.Logger) {
	fixed := dateArg != ""
	outputOnce := func() error {
		if !fixed {
			at = time.Now().UTC()
		}
		if jsonMode {
			return writeJSON(ctx, svc, loc, targets, at)
		}
		return writeText(ctx, svc, loc, targets, at)
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fatal(err)
		}
		return
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writeText prints the day almanac and tonight table, or with -body a
// full report per target.
func writeText(ctx context.Context, svc *almanac.Service, loc astro.GeoLocation, targets []ephem.Target, at time.Time) error {
	w := os.Stdout
	if bodies == "" {
		loader := ui.Loader{Service: svc, Site: loc, Targets: targets}
		snap := loader.Load(ctx, at)
		if snap.Day != nil {
			if err := ui.WriteDay(w, *snap.Day); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		return ui.WriteSnapshot(w, snap)
	}

	for i, t := range targets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r, err := svc.Observe(ctx, loc, t, at)
		if err != nil {
			return err
		}
		if err := ui.WriteReport(w, r); err != nil {
			return err
		}
		ev, err := svc.DailyEvents(ctx, loc, t, at)
		if err != nil {
			return err
		}
		if err := ui.WriteEvents(w, ev); err != nil {
			return err
		}
		if passDays > 0 {
			plan, err := svc.Passes(ctx, loc, t, at, passDays, time.Now())
			if err != nil {
				return err
			}
			if err := ui.WritePasses(w, plan); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeJSON exports the same data as writeText. Per-target failures are
// recorded in the export instead of aborting it.
func writeJSON(ctx context.Context, svc *almanac.Service, loc astro.GeoLocation, targets []ephem.Target, at time.Time) error {
	exp := almanac.NewExport(loc, time.Now())

	reports, err := svc.ObserveAll(ctx, loc, targets, at)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	exp.AddError(err)
	exp.AddReports(reports...)

	for _, t := range targets {
		ev, err := svc.DailyEvents(ctx, loc, t, at)
		if err != nil {
			exp.AddError(err)
			continue
		}
		exp.AddEvents(ev)
		if passDays > 0 {
			plan, err := svc.Passes(ctx, loc, t, at, passDays, time.Now())
			if err != nil {
				exp.AddError(err)
				continue
			}
			exp.AddPasses(plan)
		}
	}

	if bodies == "" {
		day, err := svc.Almanac(ctx, loc, at)
		if err != nil {
			exp.AddError(err)
		} else {
			exp.SetDay(day)
		}
	}
	return exp.WriteJSON(os.Stdout)
}
