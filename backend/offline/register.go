package offline

import "github.com/gogpu/esutil/backend"

func init() {
	backend.Register(backend.Offline, func() (backend.Context, error) {
		return New(), nil
	})
}

var _ backend.Context = (*Context)(nil)

// Close deletes every object still alive and logs a warning for each.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.programs {
		c.log.Warn("offline: program leaked", "program", id)
	}
	for id, obj := range c.shaders {
		c.log.Warn("offline: shader leaked", "shader", id, "stage", obj.stage)
	}
	clear(c.programs)
	clear(c.shaders)
}
