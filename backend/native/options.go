//go:build !nogpu

package native

import (
	"log/slog"

	"github.com/gogpu/esutil/shape"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures a Context.
type Option func(*options)

type options struct {
	label            string
	colorFormat      gputypes.TextureFormat
	vertexEntry      string
	fragmentEntry    string
	vertexBuffers    []gputypes.VertexBufferLayout
	bindGroupLayouts []hal.BindGroupLayout
	depthStencil     *hal.DepthStencilState
	cullMode         gputypes.CullMode
	sampleCount      uint32
	logger           *slog.Logger
}

func defaultOptions() options {
	return options{
		label:         "esutil",
		colorFormat:   gputypes.TextureFormatBGRA8Unorm,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
		vertexBuffers: []gputypes.VertexBufferLayout{shape.VertexBufferLayout()},
		cullMode:      gputypes.CullModeBack,
		sampleCount:   1,
	}
}

// WithLabel sets the prefix of the debug labels given to HAL objects.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithColorFormat sets the format of the single color target.
// The default is BGRA8Unorm.
func WithColorFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.colorFormat = format
	}
}

// WithEntryPoints sets the vertex and fragment entry point names. Empty names
// keep the defaults, vs_main and fs_main.
func WithEntryPoints(vertex, fragment string) Option {
	return func(o *options) {
		if vertex != "" {
			o.vertexEntry = vertex
		}
		if fragment != "" {
			o.fragmentEntry = fragment
		}
	}
}

// WithVertexBuffers replaces the vertex buffer layouts. The default is the
// interleaved layout of package shape.
func WithVertexBuffers(layouts ...gputypes.VertexBufferLayout) Option {
	return func(o *options) {
		o.vertexBuffers = layouts
	}
}

// WithBindGroupLayouts sets the bind group layouts of the pipeline layout.
// The layouts are owned by the caller and must outlive the programs.
func WithBindGroupLayouts(layouts ...hal.BindGroupLayout) Option {
	return func(o *options) {
		o.bindGroupLayouts = layouts
	}
}

// WithDepthStencil enables a depth/stencil attachment with the given state.
func WithDepthStencil(state *hal.DepthStencilState) Option {
	return func(o *options) {
		o.depthStencil = state
	}
}

// WithCullMode sets the face culling mode. The default culls back faces.
func WithCullMode(mode gputypes.CullMode) Option {
	return func(o *options) {
		o.cullMode = mode
	}
}

// WithSampleCount sets the MSAA sample count. Zero is treated as 1.
func WithSampleCount(count uint32) Option {
	return func(o *options) {
		o.sampleCount = max(count, 1)
	}
}

// WithLogger sets the logger for the context. By default the package logger
// from esutil.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
