package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine/instance"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/bind_group_provider"
)

// bufferWriter uploads queued buffer writes; satisfied by RendererBackend.
type bufferWriter interface {
	WriteBuffers(writes []bind_group_provider.BufferWrite) error
}

// instanceBuffer is the device-backed instance.AttributeBuffer. Writes land in a host
// staging slice and are uploaded to the GPU vertex buffer when the mapping is released.
type instanceBuffer struct {
	provider bind_group_provider.BindGroupProvider
	writer   bufferWriter
	staging  []instance.GPUInstanceAttribute
	mapped   bool
}

var _ instance.AttributeBuffer = &instanceBuffer{}

func newInstanceBuffer(provider bind_group_provider.BindGroupProvider, writer bufferWriter, count int) *instanceBuffer {
	return &instanceBuffer{
		provider: provider,
		writer:   writer,
		staging:  make([]instance.GPUInstanceAttribute, count),
	}
}

func (b *instanceBuffer) Len() int {
	return len(b.staging)
}

func (b *instanceBuffer) Write(fn func(attrs []instance.GPUInstanceAttribute)) (err error) {
	if b.mapped {
		return instance.ErrAlreadyMapped
	}
	b.mapped = true
	defer func() {
		if flushErr := b.flush(); err == nil {
			err = flushErr
		}
	}()

	fn(b.staging)
	return nil
}

// flush uploads the staging slice and releases the mapping.
func (b *instanceBuffer) flush() error {
	defer func() { b.mapped = false }()
	if len(b.staging) == 0 {
		return nil
	}
	err := b.writer.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: b.provider,
		Binding:  bind_group_provider.VertexBinding,
		Data:     common.SliceToBytes(b.staging),
	}})
	if err != nil {
		return fmt.Errorf("failed to flush instance buffer: %w", err)
	}
	return nil
}

// Mapped reports whether a Write is in progress.
func (b *instanceBuffer) Mapped() bool {
	return b.mapped
}
