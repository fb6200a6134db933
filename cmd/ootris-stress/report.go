package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/ootris/piece"
	"github.com/plus3/ootris/stats"
)

type Report struct {
	// Configuration
	Games     int
	Workers   int
	MaxPieces int
	Seed      uint64
	Policy    string
	Width     int
	Height    int

	// Results
	Played         int
	GameOvers      int
	TotalFrames    int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Score          IntStats
	Totals         stats.Summary
	Results        []*GameResult
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// IntStats summarises a per-game integer such as the final score.
type IntStats struct {
	Min, Max int
	Avg      float64
}

func (r *Report) add(results []*GameResult) {
	var scores []int
	for _, res := range results {
		if res == nil {
			continue
		}
		r.Results = append(r.Results, res)
		r.Played++
		if res.Finished {
			r.GameOvers++
		}
		r.TotalFrames += int64(res.Frames)
		r.UpdateTime.Samples = append(r.UpdateTime.Samples, res.Samples...)
		r.Totals = r.Totals.Add(res.Summary)
		scores = append(scores, res.Score)
	}
	r.UpdateTime.Finalize()

	if len(scores) > 0 {
		r.Score.Min = slices.Min(scores)
		r.Score.Max = slices.Max(scores)
		total := 0
		for _, s := range scores {
			total += s
		}
		r.Score.Avg = float64(total) / float64(len(scores))
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Stress Test Report

## Test Configuration
- **Games:** {{.Games}} ({{.Workers}} workers)
- **Board:** {{.Width}}x{{.Height}}
- **Generator:** {{.Policy}}, seeds {{.Seed}}..{{seedEnd .Seed .Games}}
- **Piece Limit:** {{.MaxPieces}} per game

## Game Results
- **Games Played:** {{.Played}} ({{.GameOvers}} topped out)
- **Pieces:** {{.Totals.Pieces}}
- **Lines:** {{.Totals.Lines}}
- **Clears:** single {{index .Totals.Clears 0}}, double {{index .Totals.Clears 1}}, triple {{index .Totals.Clears 2}}, tetris {{index .Totals.Clears 3}}
- **Score:** min {{.Score.Min}}, avg {{printf "%.1f" .Score.Avg}}, max {{.Score.Max}}

| Kind | Dealt | Share |
|------|-------|-------|
{{- range $kind := kinds}}
| {{$kind}} | {{index $.Totals.Spawns $kind}} | {{share (index $.Totals.Spawns $kind) $.Totals.Pieces}} |
{{- end}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"kinds": piece.Kinds,
		"share": func(n, total int) string {
			if total == 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
		},
		"seedEnd": func(seed uint64, games int) uint64 {
			return seed + uint64(games) - 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
