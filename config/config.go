// Package config loads game settings from an HCL file. A missing file is
// not an error: every setting has a default.
//
//	game {
//	  scoring         = scoring.classic
//	  lines_per_level = 10
//	}
//	generator {
//	  policy = policy.bag
//	  seed   = 42
//	}
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//	audio {
//	  enabled = true
//	  volume  = -1.5
//	}
//	keys {
//	  hard_drop = ["Space", "X"]
//	}
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/piece"
)

// ErrInvalid is returned when a file parses but holds unusable values.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	Rules  engine.Rules
	Policy piece.Policy
	// Seed seeds the first game; each later game uses Seed plus its index.
	// Zero picks a seed from the clock when the factory is built.
	Seed  uint64
	Log   Log
	Audio Audio
	// Keys maps each intent to key names. Names follow the ebiten key
	// naming ("ArrowLeft", "Space", "A"); each frontend resolves them.
	Keys map[loop.Intent][]string
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// Audio controls the sound cues. Volume is a base-2 gain: 0 leaves the
// cues unchanged, -1 halves them.
type Audio struct {
	Enabled bool
	Volume  float64
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules:  engine.DefaultRules(),
		Policy: piece.PolicyBag,
		Log:    Log{Level: "info", Format: "text"},
		Audio:  Audio{Enabled: true, Volume: -1},
		Keys: map[loop.Intent][]string{
			loop.MoveLeft:    {"ArrowLeft", "A"},
			loop.MoveRight:   {"ArrowRight", "D"},
			loop.SoftDrop:    {"ArrowDown", "S"},
			loop.Rotate:      {"ArrowUp", "W"},
			loop.HardDrop:    {"Space"},
			loop.TogglePause: {"P", "Escape"},
			loop.Restart:     {"R", "Enter"},
		},
	}
}

// Load reads the file at path over the defaults. A path that does not
// exist yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No configuration file, using defaults.", "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded configuration.", "path", path, "policy", cfg.Policy, "seed", cfg.Seed)
	return cfg, nil
}

// Parse decodes HCL source over the defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
	}

	evalCtx := evalContext()
	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filename, diags.Error())
	}

	cfg := Default()
	if err := cfg.apply(&raw, evalCtx); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) apply(raw *fileConfig, evalCtx *hcl.EvalContext) error {
	if g := raw.Game; g != nil {
		setInt(&c.Rules.Width, g.Width)
		setInt(&c.Rules.Height, g.Height)
		setInt(&c.Rules.HardDropPoints, g.HardDropPoints)
		setInt(&c.Rules.LinesPerLevel, g.LinesPerLevel)
		setMillis(&c.Rules.BaseInterval, g.BaseIntervalMs)
		setMillis(&c.Rules.IntervalStep, g.IntervalStepMs)
		setMillis(&c.Rules.MinInterval, g.MinIntervalMs)
		if g.Scoring != nil {
			if len(g.Scoring) != len(c.Rules.Scoring) {
				return fmt.Errorf("%w: scoring needs %d values, got %d", ErrInvalid, len(c.Rules.Scoring), len(g.Scoring))
			}
			copy(c.Rules.Scoring[:], g.Scoring)
		}
	}

	if gen := raw.Generator; gen != nil {
		if gen.Policy != nil {
			policy, err := piece.ParsePolicy(*gen.Policy)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalid, err)
			}
			c.Policy = policy
		}
		if gen.Seed != nil {
			if *gen.Seed < 0 {
				return fmt.Errorf("%w: seed must not be negative", ErrInvalid)
			}
			c.Seed = uint64(*gen.Seed)
		}
	}

	if l := raw.Log; l != nil {
		setString(&c.Log.Level, l.Level)
		setString(&c.Log.Format, l.Format)
	}

	if a := raw.Audio; a != nil {
		if a.Enabled != nil {
			c.Audio.Enabled = *a.Enabled
		}
		if a.Volume != nil {
			c.Audio.Volume = *a.Volume
		}
	}

	if raw.Keys != nil {
		return c.applyKeys(raw.Keys.Remain, evalCtx)
	}
	return nil
}

// applyKeys replaces the bindings of every intent named in the keys block.
// Intents the block does not mention keep their defaults.
func (c *Config) applyKeys(body hcl.Body, evalCtx *hcl.EvalContext) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("%w: keys: %s", ErrInvalid, diags.Error())
	}

	for name, attr := range attrs {
		intent, err := loop.ParseIntent(name)
		if err != nil {
			return fmt.Errorf("%w: keys: %w", ErrInvalid, err)
		}

		var keys []string
		if diags := gohcl.DecodeExpression(attr.Expr, evalCtx, &keys); diags.HasErrors() {
			return fmt.Errorf("%w: keys.%s: %s", ErrInvalid, name, diags.Error())
		}
		c.Keys[intent] = keys
	}
	return nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q is not text or json", ErrInvalid, c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	for intent, keys := range c.Keys {
		if slices.Contains(keys, "") {
			return fmt.Errorf("%w: empty key name bound to %s", ErrInvalid, intent)
		}
	}
	return nil
}

// Bindings inverts Keys into key name → intent. When a name is bound to
// several intents the first in declaration order wins.
func (c *Config) Bindings() map[string]loop.Intent {
	out := make(map[string]loop.Intent)
	for _, intent := range loop.Intents() {
		for _, name := range c.Keys[intent] {
			if _, taken := out[name]; !taken {
				out[name] = intent
			}
		}
	}
	return out
}

// GameFactory returns a loop.Factory building games with the configured
// rules and generator. Game n (counting from zero) is seeded with Seed+n so
// a session replays identically for a fixed seed.
func (c *Config) GameFactory() (loop.Factory, error) {
	if _, err := piece.NewGenerator(c.Policy, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rules := c.Rules
	policy := c.Policy

	var n uint64
	return func() *engine.Game {
		gen, err := piece.NewGenerator(policy, seed+n)
		if err != nil {
			panic(err)
		}
		n++
		return engine.New(rules, gen)
	}, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setMillis(dst *time.Duration, v *int) {
	if v != nil {
		*dst = time.Duration(*v) * time.Millisecond
	}
}
