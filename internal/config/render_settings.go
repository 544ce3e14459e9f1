package config

import "sync"

// RenderSettings holds settings the host may change while running
type RenderSettings struct {
	mu        sync.RWMutex
	wireframe bool
	fpsLimit  int
	showStats bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:  120,
	showStats: true,
}

// ApplyRenderSettings seeds the runtime settings from cfg.
func ApplyRenderSettings(cfg *Config) {
	SetFPSLimit(cfg.FPSLimit)
	globalRenderSettings.mu.Lock()
	globalRenderSettings.showStats = cfg.ShowStats
	globalRenderSettings.mu.Unlock()
}

// WireframeMode reports whether chunks are drawn as wireframes
func WireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframeMode flips wireframe drawing and returns the new state
func ToggleWireframeMode() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// ShowStats reports whether the stats overlay is visible
func ShowStats() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showStats
}

// ToggleStats flips the stats overlay
func ToggleStats() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showStats = !globalRenderSettings.showStats
	return globalRenderSettings.showStats
}

// GetFPSLimit returns the frame cap, 0 meaning uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}
