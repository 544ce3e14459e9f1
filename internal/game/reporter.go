package game

import (
	"log/slog"
	"time"
)

// SweepStats summarises one completed sweep.
type SweepStats struct {
	Sweep    int
	Chunks   int
	Faces    int
	Vertices int
	Indices  int
	Duration time.Duration
}

// Reporter observes completed sweeps.
type Reporter interface {
	Report(stats SweepStats)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(SweepStats)

func (f ReporterFunc) Report(stats SweepStats) { f(stats) }

// Reporters fans a report out to several observers.
type Reporters []Reporter

func (rs Reporters) Report(stats SweepStats) {
	for _, r := range rs {
		r.Report(stats)
	}
}

// LogReporter writes each sweep to a structured logger at info level.
type LogReporter struct {
	Log *slog.Logger
}

func (r LogReporter) Report(stats SweepStats) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("chunks meshed",
		"sweep", stats.Sweep,
		"chunks", stats.Chunks,
		"faces", stats.Faces,
		"vertices", stats.Vertices,
		"indices", stats.Indices,
		"took", stats.Duration.Round(time.Microsecond),
	)
}
