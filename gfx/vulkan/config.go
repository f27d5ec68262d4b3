package vulkan

// Config carries the compile-time constants spec.md §4.2/§4.6 describe
// (frames in flight, descriptor pool sizing) as overridable fields so
// app/config.go can layer TOML values over these defaults before handing
// a Config to New.
type Config struct {
	// FramesInFlight bounds how many frames may be queued to the GPU
	// ahead of the CPU (spec.md's FRAMES_IN_FLIGHT ring).
	FramesInFlight int
	// DescriptorSetsPerPool is the max number of descriptor sets the
	// backend's single descriptor pool allocates; no second pool is opened
	// when it is exhausted.
	DescriptorSetsPerPool uint32
	// DescriptorsPerTypePerPool is the per-binding-type descriptor count
	// each pool reserves (spec.md §4.2: "5000 sets, 5000 descriptors per
	// type").
	DescriptorsPerTypePerPool uint32
	// EnableValidation requests the Khronos validation layer and the
	// VK_EXT_debug_report callback when the instance
	// supports them.
	EnableValidation bool
}

// DefaultConfig returns spec.md's compile-time defaults.
func DefaultConfig() Config {
	return Config{
		FramesInFlight:            2,
		DescriptorSetsPerPool:     5000,
		DescriptorsPerTypePerPool: 5000,
		EnableValidation:          false,
	}
}
