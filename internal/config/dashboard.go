// Package config loads settings for the dashboard (a TOML file plus flags)
// and for the feed service (environment, optionally from a .env file).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"kayaglobe/internal/globe"
	"kayaglobe/internal/scene"
)

// Dashboard is the TOML config file of the terminal dashboard. Command line
// flags override whatever the file sets.
type Dashboard struct {
	Feed struct {
		BaseURL      string `toml:"base_url"`
		PollInterval string `toml:"poll_interval"`
		Timeout      string `toml:"timeout"`
		Fixture      string `toml:"fixture"`
	} `toml:"feed"`

	Contractors struct {
		File    string `toml:"file"`
		FromAPI bool   `toml:"from_api"`
	} `toml:"contractors"`

	Display struct {
		Theme       string  `toml:"theme"`
		Charset     string  `toml:"charset"`
		RefreshRate int     `toml:"refresh_rate"`
		AspectRatio float64 `toml:"aspect_ratio"`
		FeedWidth   int     `toml:"feed_width"`
		Lighting    bool    `toml:"lighting"`
		Timezone    string  `toml:"timezone"`
		Record      string  `toml:"record"`
	} `toml:"display"`

	Globe scene.GlobeConfig `toml:"globe"`

	Land struct {
		GeoJSON    string  `toml:"geojson"`
		Resolution float64 `toml:"resolution"`
		Margin     float64 `toml:"margin"`
	} `toml:"land"`

	Arcs []scene.Arc `toml:"arcs"`
}

// DefaultDashboard returns the settings used when no file is given.
func DefaultDashboard() *Dashboard {
	d := &Dashboard{Globe: scene.DefaultGlobeConfig()}
	d.Feed.Timeout = "10s"
	d.Display.Theme = "default"
	d.Display.Charset = "ascii"
	d.Display.RefreshRate = 50
	d.Display.AspectRatio = 2.0
	d.Display.FeedWidth = 45
	d.Display.Lighting = true
	d.Land.Resolution = 3
	d.Land.Margin = 0.7
	return d
}

// LoadDashboard reads path over the defaults. An empty path yields the
// defaults. Arcs fall back to the built-in routes when the file has none.
func LoadDashboard(path string) (*Dashboard, error) {
	d := DefaultDashboard()

	if path != "" {
		if _, err := toml.DecodeFile(path, d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if len(d.Arcs) == 0 {
		d.Arcs = scene.SampleArcs()
	}
	return d, nil
}

// Validate applies the same range checks as the command line.
func (d *Dashboard) Validate() error {
	var errs []error

	if d.Display.RefreshRate < 50 || d.Display.RefreshRate > 1000 {
		errs = append(errs, errors.New("refresh rate must be between 50 and 1000 milliseconds"))
	}
	if d.Display.AspectRatio < 1.0 || d.Display.AspectRatio > 4.0 {
		errs = append(errs, errors.New("aspect ratio must be between 1.0 and 4.0"))
	}
	if d.Display.FeedWidth < 30 || d.Display.FeedWidth > 80 {
		errs = append(errs, errors.New("feed width must be between 30 and 80 columns"))
	}
	if d.Globe.AutoRotateSpeed < 0 || d.Globe.AutoRotateSpeed > 10 {
		errs = append(errs, errors.New("auto rotate speed must be between 0 and 10"))
	}
	if _, err := globe.ParseCharset(d.Display.Charset); err != nil {
		errs = append(errs, err)
	}
	if _, err := d.Poll(); err != nil {
		errs = append(errs, err)
	}
	if _, err := d.FetchTimeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := d.Location(); err != nil {
		errs = append(errs, err)
	}
	if d.Land.GeoJSON != "" && d.Land.Resolution <= 0 {
		errs = append(errs, errors.New("land resolution must be positive"))
	}

	return errors.Join(errs...)
}

// Poll is the feed re-poll interval. Zero means the feed is fetched once.
func (d *Dashboard) Poll() (time.Duration, error) {
	if d.Feed.PollInterval == "" {
		return 0, nil
	}
	p, err := time.ParseDuration(d.Feed.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll interval %q: %w", d.Feed.PollInterval, err)
	}
	if p != 0 && p < time.Second {
		return 0, fmt.Errorf("poll interval %s is shorter than 1s", p)
	}
	return p, nil
}

func (d *Dashboard) FetchTimeout() (time.Duration, error) {
	if d.Feed.Timeout == "" {
		return 10 * time.Second, nil
	}
	t, err := time.ParseDuration(d.Feed.Timeout)
	if err != nil || t <= 0 {
		return 0, fmt.Errorf("invalid feed timeout %q", d.Feed.Timeout)
	}
	return t, nil
}

func (d *Dashboard) RefreshRate() time.Duration {
	return time.Duration(d.Display.RefreshRate) * time.Millisecond
}

// Location is the zone feed timestamps are shown in.
func (d *Dashboard) Location() (*time.Location, error) {
	if d.Display.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", d.Display.Timezone, err)
	}
	return loc, nil
}
