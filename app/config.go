// Package app is the application-loop layer (spec.md §7): init -> (poll +
// tick)* -> terminate, owning the main window and its swapchain. Config
// loads the engine-level constants spec.md §6 lists ("Configuration") from
// an optional zircon.toml, grounded on _examples/cogentcore-core's use of
// github.com/pelletier/go-toml/v2, layered over gfx/vulkan.DefaultConfig()
// so a missing or partial file never leaves a field unset.
package app

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/gfx/vulkan"
)

// WindowConfig is the main window's initial geometry and title.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Config is the full set of engine-level constants a zircon.toml may
// override. Every field defaults to spec.md's compile-time constants when
// the file is absent or a field is left zero-valued.
type Config struct {
	Window WindowConfig `toml:"window"`
	VSync  bool         `toml:"vsync"`
	LogLevel string     `toml:"log_level"`

	FramesInFlight            int    `toml:"frames_in_flight"`
	DescriptorSetsPerPool     uint32 `toml:"descriptor_sets_per_pool"`
	DescriptorsPerTypePerPool uint32 `toml:"descriptors_per_type_per_pool"`
	EnableValidation          bool   `toml:"enable_validation"`
}

// DefaultConfig returns the engine's compile-time defaults: an 1280x720
// window, vsync on, and gfx/vulkan.DefaultConfig()'s pool sizing.
func DefaultConfig() Config {
	vk := vulkan.DefaultConfig()
	return Config{
		Window:                    WindowConfig{Width: 1280, Height: 720, Title: "zircon"},
		VSync:                     true,
		LogLevel:                  "info",
		FramesInFlight:            vk.FramesInFlight,
		DescriptorSetsPerPool:     vk.DescriptorSetsPerPool,
		DescriptorsPerTypePerPool: vk.DescriptorsPerTypePerPool,
		EnableValidation:          vk.EnableValidation,
	}
}

// LoadConfig reads path (a zircon.toml) and layers its fields over
// DefaultConfig(). A missing file is not an error — it just means every
// field keeps its default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var file rawConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, err
	}
	cfg.overlay(file)
	return cfg, nil
}

// rawConfig mirrors Config but with pointer fields, so toml.Unmarshal can
// distinguish "key absent" from "key present and false" for the booleans —
// a plain bool field can't tell a zero-valued omission from an explicit
// false, which would otherwise silently clobber DefaultConfig's VSync=true.
type rawConfig struct {
	Window   WindowConfig `toml:"window"`
	VSync    *bool        `toml:"vsync"`
	LogLevel string       `toml:"log_level"`

	FramesInFlight            int    `toml:"frames_in_flight"`
	DescriptorSetsPerPool     uint32 `toml:"descriptor_sets_per_pool"`
	DescriptorsPerTypePerPool uint32 `toml:"descriptors_per_type_per_pool"`
	EnableValidation          *bool  `toml:"enable_validation"`
}

// overlay copies every present field of file onto c, so an omitted TOML key
// never clobbers a default.
func (c *Config) overlay(file rawConfig) {
	if file.Window.Width != 0 {
		c.Window.Width = file.Window.Width
	}
	if file.Window.Height != 0 {
		c.Window.Height = file.Window.Height
	}
	if file.Window.Title != "" {
		c.Window.Title = file.Window.Title
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.FramesInFlight != 0 {
		c.FramesInFlight = file.FramesInFlight
	}
	if file.DescriptorSetsPerPool != 0 {
		c.DescriptorSetsPerPool = file.DescriptorSetsPerPool
	}
	if file.DescriptorsPerTypePerPool != 0 {
		c.DescriptorsPerTypePerPool = file.DescriptorsPerTypePerPool
	}
	if file.VSync != nil {
		c.VSync = *file.VSync
	}
	if file.EnableValidation != nil {
		c.EnableValidation = *file.EnableValidation
	}
}

// VulkanConfig projects Config onto the subset gfx/vulkan.New consumes.
func (c Config) VulkanConfig() vulkan.Config {
	return vulkan.Config{
		FramesInFlight:            c.FramesInFlight,
		DescriptorSetsPerPool:     c.DescriptorSetsPerPool,
		DescriptorsPerTypePerPool: c.DescriptorsPerTypePerPool,
		EnableValidation:          c.EnableValidation,
	}
}

// LogLevelValue maps the config's string log level to a glog.Level,
// defaulting to glog.Info on an unrecognized value.
func (c Config) LogLevelValue() glog.Level {
	switch c.LogLevel {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn":
		return glog.Warn
	case "error":
		return glog.Error
	case "critical":
		return glog.Critical
	case "off":
		return glog.Off
	default:
		return glog.Info
	}
}
