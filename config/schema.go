package config

import "github.com/hashicorp/hcl/v2"

// fileConfig mirrors the HCL file layout. Every block and attribute is
// optional; absent values keep their defaults.
type fileConfig struct {
	Game      *gameBlock      `hcl:"game,block"`
	Generator *generatorBlock `hcl:"generator,block"`
	Log       *logBlock       `hcl:"log,block"`
	Audio     *audioBlock     `hcl:"audio,block"`
	Keys      *keysBlock      `hcl:"keys,block"`
}

type gameBlock struct {
	Width          *int  `hcl:"width,optional"`
	Height         *int  `hcl:"height,optional"`
	Scoring        []int `hcl:"scoring,optional"`
	HardDropPoints *int  `hcl:"hard_drop_points,optional"`
	LinesPerLevel  *int  `hcl:"lines_per_level,optional"`
	BaseIntervalMs *int  `hcl:"base_interval_ms,optional"`
	IntervalStepMs *int  `hcl:"interval_step_ms,optional"`
	MinIntervalMs  *int  `hcl:"min_interval_ms,optional"`
}

type generatorBlock struct {
	Policy *string `hcl:"policy,optional"`
	Seed   *int64  `hcl:"seed,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type audioBlock struct {
	Enabled *bool    `hcl:"enabled,optional"`
	Volume  *float64 `hcl:"volume,optional"`
}

// keysBlock holds one list attribute per intent name.
type keysBlock struct {
	Remain hcl.Body `hcl:",remain"`
}
