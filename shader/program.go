package shader

import "log/slog"

// Program is a linked GPU program returned by Build.
//
// The caller owns the program and must call Release when it is no longer
// needed. A released Program answers every location query with -1.
type Program struct {
	ctx      Context
	id       ProgramID
	log      *slog.Logger
	released bool
}

// ID returns the program handle, or 0 once the program has been released.
func (p *Program) ID() ProgramID {
	if p.released {
		return 0
	}
	return p.id
}

// Context returns the context the program was built on.
func (p *Program) Context() Context {
	return p.ctx
}

// AttribLocation returns the binding index of the named vertex attribute,
// or -1 if the program does not declare it.
func (p *Program) AttribLocation(name string) int32 {
	if p.released {
		return -1
	}
	return p.ctx.AttribLocation(p.id, name)
}

// UniformLocation returns the location of the named uniform, or -1 if the
// program does not declare it.
func (p *Program) UniformLocation(name string) int32 {
	if p.released {
		return -1
	}
	return p.ctx.UniformLocation(p.id, name)
}

// Release deletes the program object. Calling Release more than once is
// harmless; the extra calls are logged as warnings.
func (p *Program) Release() {
	if p == nil {
		return
	}
	if p.released {
		p.log.Warn("program released twice", "program", p.id)
		return
	}
	p.ctx.DeleteProgram(p.id)
	p.released = true
	p.log.Debug("program deleted", "program", p.id)
}

// Released reports whether Release has been called.
func (p *Program) Released() bool {
	return p.released
}
