// Package opengl implements the graphics device and scene on OpenGL 4.1.
//
// GL calls must run on the thread that owns the context. Calls made from
// other goroutines go through an Executor, normally mainthread.Call.
package opengl

import (
	"github.com/profan/dear-xenko/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Executor runs f on the GL thread and returns once it has finished.
type Executor func(f func())

// Direct runs f on the calling goroutine.
func Direct(f func()) { f() }

// Option configures a Device or Scene.
type Option func(*options)

type options struct {
	exec Executor
}

// WithExecutor routes GL calls made by Device and Scene through exec.
func WithExecutor(exec Executor) Option {
	return func(o *options) {
		if exec != nil {
			o.exec = exec
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{exec: Direct}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Device hands out GL buffer objects. Handles are the GL buffer names.
type Device struct {
	exec  Executor
	sizes map[graphics.BufferHandle]int
}

func NewDevice(opts ...Option) *Device {
	o := buildOptions(opts)
	return &Device{exec: o.exec, sizes: make(map[graphics.BufferHandle]int)}
}

// Allocate creates a buffer of count*stride bytes with undefined contents.
// Buffers are filled through the copy-write target so that no vertex array
// binding is disturbed.
func (d *Device) Allocate(usage graphics.BufferUsage, count, stride int) (graphics.BufferHandle, error) {
	size, err := graphics.CheckAllocation(count, stride)
	if err != nil {
		return 0, errors.Wrapf(err, "allocate %s buffer", usage)
	}

	var id uint32
	var glErr uint32
	d.exec(func() {
		gl.GenBuffers(1, &id)
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, id)
		gl.BufferData(gl.COPY_WRITE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
		glErr = gl.GetError()
		if glErr != gl.NO_ERROR && id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	})
	if id == 0 || glErr != gl.NO_ERROR {
		return 0, errors.Errorf("allocate %s buffer of %d bytes: gl error 0x%x", usage, size, glErr)
	}

	h := graphics.BufferHandle(id)
	d.sizes[h] = size
	return h, nil
}

func (d *Device) Upload(h graphics.BufferHandle, offset int, data []byte) error {
	size, ok := d.sizes[h]
	if !ok {
		return errors.Wrapf(graphics.ErrUnknownBuffer, "upload to %d", h)
	}
	if err := graphics.CheckUpload(size, offset, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var glErr uint32
	d.exec(func() {
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, uint32(h))
		gl.BufferSubData(gl.COPY_WRITE_BUFFER, offset, len(data), gl.Ptr(data))
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
		glErr = gl.GetError()
	})
	if glErr != gl.NO_ERROR {
		return errors.Errorf("upload %d bytes to buffer %d: gl error 0x%x", len(data), h, glErr)
	}
	return nil
}

func (d *Device) Release(h graphics.BufferHandle) error {
	if _, ok := d.sizes[h]; !ok {
		return errors.Wrapf(graphics.ErrUnknownBuffer, "release %d", h)
	}
	delete(d.sizes, h)
	id := uint32(h)
	d.exec(func() { gl.DeleteBuffers(1, &id) })
	return nil
}

// Size reports the byte size of a live buffer.
func (d *Device) Size(h graphics.BufferHandle) (int, bool) {
	size, ok := d.sizes[h]
	return size, ok
}
