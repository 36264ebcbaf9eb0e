package shader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/esutil"
)

// errZeroHandle is reported when a context hands out a 0 handle without an
// error of its own.
var errZeroHandle = errors.New("context returned a zero handle")

// object is a compiled shader object owned by Build. It is released when
// Build returns, whatever the outcome: a linked program no longer needs its
// shader objects.
type object struct {
	ctx   Context
	id    ShaderID
	stage Stage
	log   *slog.Logger
}

func (o *object) release() {
	if o.id == 0 {
		return
	}
	o.ctx.DeleteShader(o.id)
	o.log.Debug("shader deleted", "stage", o.stage, "shader", o.id)
	o.id = 0
}

// Build compiles vertexSource and fragmentSource and links them into a
// program on ctx.
//
// On success the caller owns the returned Program and must Release it. On
// failure Build returns a *BuildError and leaves nothing allocated in ctx:
//   - vertex compile failure: the vertex shader object is deleted
//   - fragment compile failure: both shader objects are deleted
//   - link failure: the program and both shader objects are deleted
//
// Compile and link diagnostics are also logged at error level.
func Build(ctx Context, vertexSource, fragmentSource string, opts ...Option) (*Program, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	o := options{logger: esutil.Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if o.label != "" {
		log = log.With("label", o.label)
	}

	vert, err := compile(ctx, StageVertex, vertexSource, log)
	if err != nil {
		return nil, err
	}
	defer vert.release()

	frag, err := compile(ctx, StageFragment, fragmentSource, log)
	if err != nil {
		return nil, err
	}
	defer frag.release()

	id, err := ctx.CreateProgram()
	if err == nil && id == 0 {
		err = errZeroHandle
	}
	if err != nil {
		log.Error("program allocation failed", "err", err)
		return nil, &BuildError{Stage: StageNone, Err: fmt.Errorf("%w: %w", ErrResourceCreation, err)}
	}
	log.Debug("program created", "program", id)

	// Deleted on every exit except success, panics included.
	linked := false
	defer func() {
		if !linked {
			ctx.DeleteProgram(id)
			log.Debug("program deleted", "program", id)
		}
	}()

	ctx.AttachShader(id, vert.id)
	ctx.AttachShader(id, frag.id)

	if !ctx.LinkProgram(id) {
		diag := ctx.ProgramInfoLog(id)
		log.Error("program link failed", "program", id, "log", diag)
		return nil, &BuildError{Stage: StageNone, Log: diag, Err: ErrLink}
	}

	linked = true
	log.Info("program linked", "program", id)
	return &Program{ctx: ctx, id: id, log: log}, nil
}

// BuildSources is Build for typed sources. It rejects a vertex or fragment
// Source tagged with the wrong stage before touching the context.
func BuildSources(ctx Context, vertex, fragment Source, opts ...Option) (*Program, error) {
	if vertex.Stage != StageVertex {
		return nil, fmt.Errorf("%w: vertex source tagged %s", ErrStageMismatch, vertex.Stage)
	}
	if fragment.Stage != StageFragment {
		return nil, fmt.Errorf("%w: fragment source tagged %s", ErrStageMismatch, fragment.Stage)
	}
	return Build(ctx, vertex.Text, fragment.Text, opts...)
}

// compile creates and compiles one shader object. On failure the object is
// already released.
func compile(ctx Context, stage Stage, source string, log *slog.Logger) (*object, error) {
	id, err := ctx.CreateShader(stage)
	if err == nil && id == 0 {
		err = errZeroHandle
	}
	if err != nil {
		log.Error("shader allocation failed", "stage", stage, "err", err)
		return nil, &BuildError{Stage: stage, Err: fmt.Errorf("%w: %w", ErrResourceCreation, err)}
	}

	obj := &object{ctx: ctx, id: id, stage: stage, log: log}
	if !ctx.CompileShader(id, source) {
		diag := ctx.ShaderInfoLog(id)
		obj.release()
		log.Error("shader compile failed", "stage", stage, "log", diag)
		return nil, &BuildError{Stage: stage, Log: diag, Err: ErrCompile}
	}

	log.Debug("shader compiled", "stage", stage, "shader", id)
	return obj, nil
}
