// Package game drives the per-frame chunk mesh sweep.
package game

import (
	"log/slog"
	"time"

	"github.com/profan/dear-xenko/internal/meshing"
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/pkg/errors"
)

// State is the driver's sweep state, derived from the world's global flag.
type State int

const (
	StateIdle State = iota
	StateSweeping
)

func (s State) String() string {
	if s == StateSweeping {
		return "sweeping"
	}
	return "idle"
}

// Uploader takes a freshly built mesh for a chunk. The chunk renderer is the
// production implementation.
type Uploader interface {
	Upload(coord world.ChunkCoord, mesh meshing.Mesh) error
}

// Driver re-meshes dirty chunks once per tick.
type Driver struct {
	world    *world.World
	uploader Uploader
	mesher   *meshing.Mesher
	reporter Reporter
	log      *slog.Logger

	neighborCulling bool
	sweeps          int
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithReporter installs an observer called after every completed sweep.
func WithReporter(r Reporter) DriverOption {
	return func(d *Driver) { d.reporter = r }
}

func WithLogger(log *slog.Logger) DriverOption {
	return func(d *Driver) { d.log = log }
}

// WithNeighborCulling makes the mesher look into adjacent chunks instead of
// treating the chunk border as air.
func WithNeighborCulling(enabled bool) DriverOption {
	return func(d *Driver) { d.neighborCulling = enabled }
}

func NewDriver(w *world.World, uploader Uploader, opts ...DriverOption) *Driver {
	d := &Driver{
		world:    w,
		uploader: uploader,
		mesher:   meshing.NewMesher(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) State() State {
	if d.world.Dirty() {
		return StateSweeping
	}
	return StateIdle
}

// Sweeps returns the number of completed sweeps.
func (d *Driver) Sweeps() int {
	return d.sweeps
}

// Tick runs one sweep if the world is dirty. Each chunk's flag is cleared
// right after its mesh is uploaded; the global flag only once every dirty
// chunk has been handled. An upload error aborts the sweep with the global
// flag still raised. dt is unused.
func (d *Driver) Tick(dt float64) error {
	if !d.world.Dirty() {
		return nil
	}
	defer profiling.Track("game.Sweep")()

	start := time.Now()
	stats := SweepStats{Sweep: d.sweeps + 1}
	for _, coord := range d.world.DirtyChunks() {
		var neighbors meshing.BlockSource
		if d.neighborCulling {
			neighbors = meshing.WorldNeighbors(d.world, coord)
		}
		mesh := d.mesher.BuildChunk(d.world.ChunkAt(coord.X, coord.Y, coord.Z), neighbors)
		if err := d.uploader.Upload(coord, mesh); err != nil {
			return errors.Wrapf(err, "sweep %d", stats.Sweep)
		}
		d.world.SetDirty(coord.X, coord.Y, coord.Z, false)

		stats.Chunks++
		stats.Faces += mesh.Faces()
		stats.Vertices += len(mesh.Vertices)
		stats.Indices += len(mesh.Indices)
	}
	d.world.ClearDirty()
	d.sweeps++
	stats.Duration = time.Since(start)

	d.log.Debug("sweep done", "sweep", stats.Sweep, "chunks", stats.Chunks, "faces", stats.Faces, "took", stats.Duration)
	if d.reporter != nil {
		d.reporter.Report(stats)
	}
	return nil
}
