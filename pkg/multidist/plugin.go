package multidist

import (
	"github.com/redetach/multidist/pkg/framework/plugin"
	vst3plugin "github.com/redetach/multidist/pkg/plugin"
)

// ID is the reverse-DNS plugin identifier
const ID = "com.redetach.multidist"

// Plugin implements the Plugin interface
type Plugin struct{}

// GetInfo returns the plugin metadata
func (Plugin) GetInfo() plugin.Info {
	return plugin.Info{
		ID:       ID,
		Name:     "MultiDist",
		Version:  "1.0.0",
		Vendor:   "redetach",
		Category: "Fx",
	}
}

// CreateProcessor creates a new session
func (Plugin) CreateProcessor() vst3plugin.Processor {
	return NewSession()
}

// Register makes MultiDist the process-wide plugin
func Register() {
	vst3plugin.Register(Plugin{})
	vst3plugin.SetFactoryInfo(vst3plugin.FactoryInfo{
		Vendor: "redetach",
		URL:    "https://github.com/redetach/multidist",
	})
}
