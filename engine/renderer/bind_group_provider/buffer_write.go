package bind_group_provider

// BufferWrite describes a single queued GPU buffer write. A negative Binding targets the
// provider's vertex buffer instead of a uniform binding.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// VertexBinding selects the provider's vertex buffer as the target of a BufferWrite.
const VertexBinding = -1
