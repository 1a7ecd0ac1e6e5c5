package lorax

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Timing holds every delay and duration the interaction core uses.
type Timing struct {
	Fade          time.Duration `yaml:"fade"`           // title, description and decoy fades
	ItemMove      time.Duration `yaml:"item_move"`      // member moves between layouts
	Relocate      time.Duration `yaml:"relocate"`       // Topic.MoveTo anchor transition
	Confirm       time.Duration `yaml:"confirm"`        // hover confirmation check
	Settle        time.Duration `yaml:"settle"`         // entering/leaving settle delay
	TapCommit     time.Duration `yaml:"tap_commit"`     // tap preview before commit
	HoverCooldown time.Duration `yaml:"hover_cooldown"` // hover disarmed after MoveTo
	ToneDown      time.Duration `yaml:"tone_down"`
	ToneUp        time.Duration `yaml:"tone_up"`
}

// Elastic configures the ease used by Topic.MoveTo.
type Elastic struct {
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
}

// Config is the topic geometry and timing. Load one with LoadConfig or start
// from DefaultConfig.
type Config struct {
	Radius            float64 `yaml:"radius"`             // half side of the compact region
	LinearSpacing     float64 `yaml:"linear_spacing"`     // vertical distance between listed items
	LinearWidth       float64 `yaml:"linear_width"`       // width of the list column
	Margin            float64 `yaml:"margin"`             // added to the expanded region
	ListInset         float64 `yaml:"list_inset"`         // expanded region width beyond the list column
	LinearOrigin      Vec2    `yaml:"linear_origin"`      // list origin relative to the anchor
	TitleGap          float64 `yaml:"title_gap"`          // space between raised title and list
	TitlePadding      float64 `yaml:"title_padding"`      // member offsets keep clear of the title by this much
	DescriptionOffset float64 `yaml:"description_offset"` // description top below the compact region
	DescriptionWrap   float64 `yaml:"description_wrap"`
	ScatterRadius     float64 `yaml:"scatter_radius"` // decoy distance from anchor when hidden
	ToneAlpha         float64 `yaml:"tone_alpha"`

	TitleColor       Color `yaml:"-"`
	DescriptionColor Color `yaml:"-"`

	Timing  Timing  `yaml:"timing"`
	Elastic Elastic `yaml:"elastic"`

	// Seed drives rest offset placement. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the stock geometry and timings.
func DefaultConfig() Config {
	return Config{
		Radius:            70,
		LinearSpacing:     35,
		LinearWidth:       80,
		Margin:            20,
		ListInset:         100,
		LinearOrigin:      Vec2{X: -110, Y: 60},
		TitleGap:          50,
		TitlePadding:      5,
		DescriptionOffset: 50,
		DescriptionWrap:   200,
		ScatterRadius:     400,
		ToneAlpha:         0.5,
		TitleColor:        ColorFromHex(0x222222),
		DescriptionColor:  ColorFromHex(0x666666),
		Timing: Timing{
			Fade:          300 * time.Millisecond,
			ItemMove:      300 * time.Millisecond,
			Relocate:      300 * time.Millisecond,
			Confirm:       100 * time.Millisecond,
			Settle:        300 * time.Millisecond,
			TapCommit:     200 * time.Millisecond,
			HoverCooldown: 5000 * time.Millisecond,
			ToneDown:      300 * time.Millisecond,
			ToneUp:        time.Second,
		},
		Elastic: Elastic{Amplitude: 2, Period: 0.7},
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the geometry and timings are usable.
func (c Config) Validate() error {
	switch {
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive", ErrInvalidConfig)
	case c.LinearSpacing <= 0:
		return fmt.Errorf("%w: linear_spacing must be positive", ErrInvalidConfig)
	case c.LinearWidth < 0 || c.Margin < 0 || c.ListInset < 0:
		return fmt.Errorf("%w: linear_width, margin and list_inset must not be negative", ErrInvalidConfig)
	case c.ToneAlpha < 0 || c.ToneAlpha > 1:
		return fmt.Errorf("%w: tone_alpha must be within [0, 1]", ErrInvalidConfig)
	case c.Timing.Confirm <= 0 || c.Timing.Settle <= 0:
		return fmt.Errorf("%w: confirm and settle delays must be positive", ErrInvalidConfig)
	case c.Timing.Confirm >= c.Timing.Settle:
		return fmt.Errorf("%w: confirm (%v) must be shorter than settle (%v)", ErrInvalidConfig, c.Timing.Confirm, c.Timing.Settle)
	case c.Timing.TapCommit < 0 || c.Timing.HoverCooldown < 0:
		return fmt.Errorf("%w: tap_commit and hover_cooldown must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig, so omitted keys keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
