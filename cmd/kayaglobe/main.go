// Command kayaglobe is a terminal dashboard: a rotating globe with the
// routes from contractors through the consolidation hub to the site, next to
// an auto-scrolling procurement feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"kayaglobe/internal/config"
	"kayaglobe/internal/contractor"
	"kayaglobe/internal/dashboard"
	"kayaglobe/internal/feed"
	"kayaglobe/internal/globe"
	"kayaglobe/internal/scene"
)

func showHelp() {
	fmt.Printf(`kayaglobe - terminal globe of procurement routes with a live submittal feed

DESCRIPTION:
    Terminal-based dashboard displaying a rotating 3D globe with animated
    routes from contractors to the consolidation hub and on to the site,
    next to an auto-scrolling procurement/submittal feed.

USAGE:
    kayaglobe [OPTIONS]

OPTIONS:
    -h                Show this help message
    -d <filename>     Enable debug logging to specified file
    -r <milliseconds> Globe refresh rate in milliseconds (50-1000, default: 50)
    -m                Enable monochrome mode
    -a <ratio>        Character aspect ratio (height/width, 1.0-4.0, default: 2.0)
    -u <url>          Base URL of the feed service (default: bundled sample feed)
    -p <duration>     Feed polling interval, 0 fetches once (default: 0)
    --charset <type>  Character set: ascii|blocks|braille (default: ascii)
    --theme <name>    Theme: default|matrix|amber|solarized|nord|dracula|mono
    --lighting        Enable globe lighting/shading (default: true)
    --record <file>   Record session to asciinema file
    --config <file>   Load settings from TOML config file

INTERACTIVE CONTROLS:
    Mouse    - Hover a contractor for details
    Tab      - Cycle through contractors
    Space    - Pause/Resume rotation and feed
    [/]      - Decrease/Increase spin speed
    +/-      - Zoom in/out
    Arrows   - Nudge view angle
    T        - Cycle through themes
    G        - Toggle route arcs
    L        - Toggle lighting
    C        - Toggle command guide
    ?        - Toggle help panel
    Q/X/Esc  - Exit

EXAMPLES:
    # Bundled sample data
    kayaglobe

    # Live feed service, re-polled every 30 seconds
    kayaglobe -u http://localhost:8000 -p 30s

    # Nord theme with Braille characters, recorded
    kayaglobe --theme nord --charset braille --record demo.cast
`)
}

func loadLand(cfg *config.Dashboard) (scene.Landmass, error) {
	if cfg.Land.GeoJSON == "" {
		return globe.DefaultLand(), nil
	}
	f, err := os.Open(cfg.Land.GeoJSON)
	if err != nil {
		return nil, fmt.Errorf("open land outline: %w", err)
	}
	defer f.Close()
	return globe.LoadGeoJSON(f, cfg.Land.Resolution, cfg.Land.Margin)
}

func loadContractors(ctx context.Context, cfg *config.Dashboard, timeout time.Duration, logger zerolog.Logger) []contractor.Contractor {
	var src contractor.Source = contractor.FixtureSource{Path: cfg.Contractors.File}
	if cfg.Contractors.FromAPI && cfg.Feed.BaseURL != "" {
		src = contractor.NewHTTPSource(cfg.Feed.BaseURL, timeout)
	}

	cs, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load contractors, using bundled list")
		cs, err = contractor.FixtureSource{}.Fetch(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Bundled contractor list unreadable")
		}
	}
	logger.Debug().Int("contractors", len(cs)).Msg("Contractors loaded")
	return cs
}

func main() {
	var debugFile = flag.String("d", "", "Debug log filename")
	var showHelpFlag = flag.Bool("h", false, "Show help")
	var refreshRate = flag.Int("r", 50, "Globe refresh rate in milliseconds")
	var monochrome = flag.Bool("m", false, "Enable monochrome mode")
	var aspectRatio = flag.Float64("a", 2.0, "Character aspect ratio")
	var baseURL = flag.String("u", "", "Base URL of the feed service")
	var pollInterval = flag.Duration("p", 0, "Feed polling interval")
	var charset = flag.String("charset", "ascii", "Character set: ascii|blocks|braille")
	var themeName = flag.String("theme", "default", "Theme name")
	var lighting = flag.Bool("lighting", true, "Enable globe lighting/shading")
	var recordFile = flag.String("record", "", "Record to asciinema file")
	var configFile = flag.String("config", "", "Load from TOML config file")

	flag.Parse()

	if *showHelpFlag {
		showHelp()
		os.Exit(0)
	}

	cfg, err := config.LoadDashboard(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r":
			cfg.Display.RefreshRate = *refreshRate
		case "a":
			cfg.Display.AspectRatio = *aspectRatio
		case "u":
			cfg.Feed.BaseURL = *baseURL
		case "p":
			cfg.Feed.PollInterval = pollInterval.String()
		case "charset":
			cfg.Display.Charset = *charset
		case "theme":
			cfg.Display.Theme = *themeName
		case "lighting":
			cfg.Display.Lighting = *lighting
		case "record":
			cfg.Display.Record = *recordFile
		}
	})
	if *monochrome {
		cfg.Display.Theme = "mono"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cs, _ := globe.ParseCharset(cfg.Display.Charset)
	poll, _ := cfg.Poll()
	timeout, _ := cfg.FetchTimeout()
	loc, _ := cfg.Location()

	logger := zerolog.Nop()
	if *debugFile != "" {
		file, err := os.OpenFile(*debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		logger = zerolog.New(file).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		logger.Info().Msg("kayaglobe starting")
	}

	land, err := loadLand(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading land: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	animator := feed.NewAnimator(clock, feed.DefaultStep, dashboard.RowHeight)
	items := &feed.Store{}

	tui, err := dashboard.New(screen, animator, items, dashboard.Options{
		Aspect:      cfg.Display.AspectRatio,
		Charset:     cs,
		Theme:       cfg.Display.Theme,
		RefreshRate: cfg.RefreshRate(),
		AutoRotate:  cfg.Globe.AutoRotate,
		RotateSpeed: cfg.Globe.AutoRotateSpeed,
		Camera:      globe.NewCamera(cfg.Globe.InitialPosition.Lat, cfg.Globe.InitialPosition.Lng),
		Lighting:    cfg.Display.Lighting,
		FeedWidth:   cfg.Display.FeedWidth,
		RecordPath:  cfg.Display.Record,
		Location:    loc,
		Clock:       clock,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing dashboard: %v\n", err)
		os.Exit(1)
	}
	defer tui.Close()

	builder := scene.NewBuilder(cfg.Globe, land, logger)
	contractors := loadContractors(ctx, cfg, timeout, logger)
	markers := contractor.Markers(contractors, nil, builder.Color)
	builder.Update(tui, cfg.Arcs, markers)

	var src feed.Source = feed.FixtureSource{Path: cfg.Feed.Fixture}
	if cfg.Feed.BaseURL != "" {
		src = feed.NewHTTPSource(cfg.Feed.BaseURL, timeout)
	}

	loader := feed.NewLoader(src, items,
		feed.WithPollInterval(poll),
		feed.WithClock(clock),
		feed.WithLogger(logger),
		feed.OnUpdate(func(got []feed.Item) {
			counts := feed.CountByContractor(got)
			tui.Do(func() {
				for i, m := range markers {
					m.Detail = contractor.Detail(contractors[i], counts[m.Name])
				}
				builder.Update(tui, cfg.Arcs, markers)
				tui.FeedUpdated(len(got))
			})
		}),
	)
	loader.Start(ctx)

	if err := tui.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Dashboard stopped")
	}
	logger.Info().Msg("kayaglobe exiting")
}
