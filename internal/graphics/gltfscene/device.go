// Package gltfscene is a headless graphics backend. Buffers live in memory
// and the scene can be written out as a glTF document.
package gltfscene

import (
	"github.com/profan/dear-xenko/internal/graphics"

	"github.com/pkg/errors"
)

type buffer struct {
	usage  graphics.BufferUsage
	stride int
	data   []byte
}

// DeviceStats counts device calls, mostly for tests and the stats overlay.
type DeviceStats struct {
	Allocations int
	Releases    int
	Uploads     int
	LiveBuffers int
	LiveBytes   int
}

// Device keeps buffers as plain byte slices.
type Device struct {
	buffers map[graphics.BufferHandle]*buffer
	next    graphics.BufferHandle
	stats   DeviceStats
}

// NewDevice creates an empty in-memory device.
func NewDevice() *Device {
	return &Device{buffers: make(map[graphics.BufferHandle]*buffer)}
}

func (d *Device) Allocate(usage graphics.BufferUsage, count, stride int) (graphics.BufferHandle, error) {
	size, err := graphics.CheckAllocation(count, stride)
	if err != nil {
		return 0, errors.Wrapf(err, "allocate %s buffer", usage)
	}
	d.next++
	d.buffers[d.next] = &buffer{usage: usage, stride: stride, data: make([]byte, size)}
	d.stats.Allocations++
	return d.next, nil
}

func (d *Device) Upload(h graphics.BufferHandle, offset int, data []byte) error {
	b, ok := d.buffers[h]
	if !ok {
		return errors.Wrapf(graphics.ErrUnknownBuffer, "upload to %d", h)
	}
	if err := graphics.CheckUpload(len(b.data), offset, len(data)); err != nil {
		return err
	}
	copy(b.data[offset:], data)
	d.stats.Uploads++
	return nil
}

func (d *Device) Release(h graphics.BufferHandle) error {
	if _, ok := d.buffers[h]; !ok {
		return errors.Wrapf(graphics.ErrUnknownBuffer, "release %d", h)
	}
	delete(d.buffers, h)
	d.stats.Releases++
	return nil
}

// Bytes returns the backing storage of a buffer. The slice aliases the
// device's copy.
func (d *Device) Bytes(h graphics.BufferHandle) ([]byte, error) {
	b, ok := d.buffers[h]
	if !ok {
		return nil, errors.Wrapf(graphics.ErrUnknownBuffer, "read %d", h)
	}
	return b.data, nil
}

// Stats returns call counters and live totals.
func (d *Device) Stats() DeviceStats {
	s := d.stats
	s.LiveBuffers = len(d.buffers)
	s.LiveBytes = 0
	for _, b := range d.buffers {
		s.LiveBytes += len(b.data)
	}
	return s
}
