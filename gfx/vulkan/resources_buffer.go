package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// bufferResource is grounded on legacy/dieselvk/extensions_2.go's Buffer
// type: a vk.Buffer handle plus the backing allocation, generalized to
// carry the usage/memory class so BufferMap can refuse non-host-visible
// buffers instead of handing back garbage.
type bufferResource struct {
	buffer vk.Buffer
	alloc  allocation
	size   uint64
	usage  gfx.Usage
	memory gfx.MemoryUsage
}

func (b *Backend) CreateBuffer(desc gfx.BufferDesc) gfx.Buffer {
	var buf vk.Buffer
	ret := vk.CreateBuffer(b.device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(desc.Size),
		Usage:       toVkBufferUsage(desc.Usage),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buf)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateBuffer failed: %v", newError(ret))
		return 0
	}

	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.device, buf, &reqs)
	a, err := b.alloc.alloc(reqs, desc.Memory)
	if err != nil {
		vk.DestroyBuffer(b.device, buf, nil)
		glog.Global.Errorf("vulkan: CreateBuffer allocation failed: %v", err)
		return 0
	}
	if ret := vk.BindBufferMemory(b.device, buf, a.memory, 0); isError(ret) {
		b.alloc.free(a)
		vk.DestroyBuffer(b.device, buf, nil)
		glog.Global.Errorf("vulkan: CreateBuffer bind failed: %v", newError(ret))
		return 0
	}

	key := b.buffers.Insert(bufferResource{
		buffer: buf,
		alloc:  a,
		size:   desc.Size,
		usage:  desc.Usage,
		memory: desc.Memory,
	})
	h := gfx.Buffer(key)
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeBuffer, uint64(buf), desc.Label)
	}
	return h
}

func (b *Backend) DestroyBuffer(h gfx.Buffer) {
	rec, ok := b.buffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyBuffer on unknown or already-destroyed handle")
		return
	}
	b.alloc.free(rec.alloc)
	vk.DestroyBuffer(b.device, rec.buffer, nil)
	b.buffers.Remove(arena.Key(h))
}

func (b *Backend) BufferWrite(h gfx.Buffer, offset uint64, data []byte) {
	rec, ok := b.buffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: BufferWrite on unknown handle")
		return
	}
	if rec.alloc.mapped == nil {
		glog.Global.Errorf("vulkan: BufferWrite on non-host-visible buffer (memory usage %v)", rec.memory)
		return
	}
	if offset+uint64(len(data)) > rec.size {
		glog.Global.Errorf("vulkan: BufferWrite out of bounds (offset=%d len=%d size=%d)", offset, len(data), rec.size)
		return
	}
	copy(rec.alloc.mapped[offset:], data)
}

func (b *Backend) BufferMap(h gfx.Buffer, offset, size uint64) []byte {
	rec, ok := b.buffers.Get(arena.Key(h))
	if !ok || rec.alloc.mapped == nil {
		return nil
	}
	if size == 0 {
		size = rec.size - offset
	}
	if offset+size > rec.size {
		glog.Global.Errorf("vulkan: BufferMap out of bounds")
		return nil
	}
	return rec.alloc.mapped[offset : offset+size]
}

func (b *Backend) BufferUnmap(h gfx.Buffer) {
	// Memory stays persistently mapped for host-visible buffers (the
	// suballocator maps once at allocation time), so Unmap is a no-op —
	// matching legacy/dieselvk's CreateBuffer, which also never unmaps
	// until destroy.
}

