//go:build !nogpu

package native

import (
	"github.com/gogpu/esutil/backend"
	"github.com/gogpu/wgpu/hal/noop"
)

func init() {
	backend.Register(backend.Headless, func() (backend.Context, error) {
		return New(&noop.Device{}, WithLabel(backend.Headless))
	})
}

var _ backend.Context = (*Context)(nil)

// Close is Destroy, for use through backend.Context.
func (c *Context) Close() {
	c.Destroy()
}
