package dashboard

import (
	"github.com/gdamore/tcell/v2"

	"kayaglobe/internal/feed"
	"kayaglobe/internal/globe"
)

// Theme colors the panes. A theme with Recolor set also overrides the scene
// colors of the globe; otherwise the globe keeps its configured look.
type Theme struct {
	Name         string
	Recolor      bool
	Background   tcell.Color
	Text         tcell.Color
	Globe        tcell.Color
	Ocean        tcell.Color
	Marker       tcell.Color
	Header       tcell.Color
	Feed         tcell.Color
	Separator    tcell.Color
	StatusOk     tcell.Color
	StatusError  tcell.Color
	ArcTrail     tcell.Color
	InProduction tcell.Color
	OnSite       tcell.Color
	Released     tcell.Color
	Tooltip      tcell.Color
}

var themeOrder = []string{"default", "matrix", "amber", "solarized", "nord", "dracula", "mono"}

var themes = map[string]*Theme{
	"default": {
		Name:         "default",
		Background:   tcell.ColorBlack,
		Text:         tcell.ColorWhite,
		Header:       tcell.NewRGBColor(255, 203, 33),
		Feed:         tcell.NewRGBColor(212, 212, 216),
		Separator:    tcell.ColorGray,
		StatusOk:     tcell.ColorGreen,
		StatusError:  tcell.ColorRed,
		InProduction: tcell.NewRGBColor(250, 204, 21),
		OnSite:       tcell.NewRGBColor(74, 222, 128),
		Released:     tcell.NewRGBColor(56, 189, 248),
		Tooltip:      tcell.NewRGBColor(24, 24, 27),
	},
	"matrix": {
		Name:         "matrix",
		Recolor:      true,
		Background:   tcell.ColorBlack,
		Text:         tcell.NewRGBColor(0, 255, 65),
		Globe:        tcell.NewRGBColor(0, 255, 65),
		Ocean:        tcell.NewRGBColor(0, 40, 10),
		Marker:       tcell.NewRGBColor(100, 255, 100),
		Header:       tcell.NewRGBColor(0, 200, 50),
		Feed:         tcell.NewRGBColor(0, 180, 45),
		Separator:    tcell.NewRGBColor(0, 100, 25),
		StatusOk:     tcell.NewRGBColor(0, 255, 65),
		StatusError:  tcell.NewRGBColor(0, 150, 40),
		ArcTrail:     tcell.NewRGBColor(0, 255, 100),
		InProduction: tcell.NewRGBColor(150, 255, 150),
		OnSite:       tcell.NewRGBColor(0, 255, 65),
		Released:     tcell.NewRGBColor(0, 150, 40),
		Tooltip:      tcell.NewRGBColor(0, 30, 8),
	},
	"amber": {
		Name:         "amber",
		Recolor:      true,
		Background:   tcell.ColorBlack,
		Text:         tcell.NewRGBColor(255, 176, 0),
		Globe:        tcell.NewRGBColor(255, 176, 0),
		Ocean:        tcell.NewRGBColor(50, 30, 0),
		Marker:       tcell.NewRGBColor(255, 220, 100),
		Header:       tcell.NewRGBColor(255, 160, 0),
		Feed:         tcell.NewRGBColor(220, 140, 0),
		Separator:    tcell.NewRGBColor(120, 80, 0),
		StatusOk:     tcell.NewRGBColor(255, 176, 0),
		StatusError:  tcell.NewRGBColor(180, 100, 0),
		ArcTrail:     tcell.NewRGBColor(255, 200, 80),
		InProduction: tcell.NewRGBColor(255, 220, 100),
		OnSite:       tcell.NewRGBColor(255, 176, 0),
		Released:     tcell.NewRGBColor(180, 120, 0),
		Tooltip:      tcell.NewRGBColor(40, 25, 0),
	},
	"solarized": {
		Name:         "solarized",
		Recolor:      true,
		Background:   tcell.NewRGBColor(0, 43, 54),
		Text:         tcell.NewRGBColor(131, 148, 150),
		Globe:        tcell.NewRGBColor(42, 161, 152),
		Ocean:        tcell.NewRGBColor(7, 54, 66),
		Marker:       tcell.NewRGBColor(220, 50, 47),
		Header:       tcell.NewRGBColor(181, 137, 0),
		Feed:         tcell.NewRGBColor(38, 139, 210),
		Separator:    tcell.NewRGBColor(88, 110, 117),
		StatusOk:     tcell.NewRGBColor(133, 153, 0),
		StatusError:  tcell.NewRGBColor(220, 50, 47),
		ArcTrail:     tcell.NewRGBColor(203, 75, 22),
		InProduction: tcell.NewRGBColor(181, 137, 0),
		OnSite:       tcell.NewRGBColor(133, 153, 0),
		Released:     tcell.NewRGBColor(38, 139, 210),
		Tooltip:      tcell.NewRGBColor(7, 54, 66),
	},
	"nord": {
		Name:         "nord",
		Recolor:      true,
		Background:   tcell.NewRGBColor(46, 52, 64),
		Text:         tcell.NewRGBColor(216, 222, 233),
		Globe:        tcell.NewRGBColor(136, 192, 208),
		Ocean:        tcell.NewRGBColor(59, 66, 82),
		Marker:       tcell.NewRGBColor(191, 97, 106),
		Header:       tcell.NewRGBColor(235, 203, 139),
		Feed:         tcell.NewRGBColor(129, 161, 193),
		Separator:    tcell.NewRGBColor(76, 86, 106),
		StatusOk:     tcell.NewRGBColor(163, 190, 140),
		StatusError:  tcell.NewRGBColor(191, 97, 106),
		ArcTrail:     tcell.NewRGBColor(208, 135, 112),
		InProduction: tcell.NewRGBColor(235, 203, 139),
		OnSite:       tcell.NewRGBColor(163, 190, 140),
		Released:     tcell.NewRGBColor(129, 161, 193),
		Tooltip:      tcell.NewRGBColor(59, 66, 82),
	},
	"dracula": {
		Name:         "dracula",
		Recolor:      true,
		Background:   tcell.NewRGBColor(40, 42, 54),
		Text:         tcell.NewRGBColor(248, 248, 242),
		Globe:        tcell.NewRGBColor(80, 250, 123),
		Ocean:        tcell.NewRGBColor(68, 71, 90),
		Marker:       tcell.NewRGBColor(255, 121, 198),
		Header:       tcell.NewRGBColor(241, 250, 140),
		Feed:         tcell.NewRGBColor(139, 233, 253),
		Separator:    tcell.NewRGBColor(98, 114, 164),
		StatusOk:     tcell.NewRGBColor(80, 250, 123),
		StatusError:  tcell.NewRGBColor(255, 85, 85),
		ArcTrail:     tcell.NewRGBColor(255, 184, 108),
		InProduction: tcell.NewRGBColor(241, 250, 140),
		OnSite:       tcell.NewRGBColor(80, 250, 123),
		Released:     tcell.NewRGBColor(139, 233, 253),
		Tooltip:      tcell.NewRGBColor(68, 71, 90),
	},
	"mono": {
		Name:         "mono",
		Recolor:      true,
		Background:   tcell.ColorBlack,
		Text:         tcell.ColorWhite,
		Globe:        tcell.ColorWhite,
		Ocean:        tcell.ColorDefault,
		Marker:       tcell.ColorWhite,
		Header:       tcell.ColorWhite,
		Feed:         tcell.ColorWhite,
		Separator:    tcell.ColorWhite,
		StatusOk:     tcell.ColorWhite,
		StatusError:  tcell.ColorWhite,
		ArcTrail:     tcell.ColorWhite,
		InProduction: tcell.ColorWhite,
		OnSite:       tcell.ColorWhite,
		Released:     tcell.ColorWhite,
		Tooltip:      tcell.ColorBlack,
	},
}

// ThemeNames lists the themes in cycling order.
func ThemeNames() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

// LookupTheme returns the named theme, or the default theme and false.
func LookupTheme(name string) (*Theme, bool) {
	th, ok := themes[name]
	if !ok {
		return themes["default"], false
	}
	return th, true
}

func (th *Theme) StatusColor(s feed.Status) tcell.Color {
	switch s {
	case feed.StatusInProduction:
		return th.InProduction
	case feed.StatusOnSite:
		return th.OnSite
	case feed.StatusReleased:
		return th.Released
	default:
		return th.Text
	}
}

// CellStyle styles one rendered globe cell.
func (th *Theme) CellStyle(c globe.Cell) tcell.Style {
	style := tcell.StyleDefault.Background(th.Background).Foreground(c.Fg.Tcell())
	if !th.Recolor {
		if c.HasBg {
			style = style.Background(c.Bg.Tcell())
		}
		if c.Kind == globe.KindMarker || c.Kind == globe.KindArc {
			style = style.Bold(true)
		}
		return style
	}

	if c.HasBg && th.Ocean != tcell.ColorDefault {
		style = style.Background(th.Ocean)
	}
	switch c.Kind {
	case globe.KindLand, globe.KindAtmosphere:
		return style.Foreground(th.Globe)
	case globe.KindArc:
		return style.Foreground(th.ArcTrail).Bold(true)
	case globe.KindRing, globe.KindPoint:
		return style.Foreground(th.Text)
	case globe.KindMarker:
		return style.Foreground(th.Marker).Bold(true)
	default:
		return style
	}
}
