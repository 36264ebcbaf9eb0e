// Package shader compiles and links GPU programs from vertex and fragment
// source text.
//
// The builder is written against the Context capability rather than a
// process-wide "current context": every call names the context it acts on.
// Implementations live in the backend/ packages; shadertest provides an
// in-memory recording context for tests.
//
// # Resource discipline
//
// Build owns every intermediate object it creates. Whatever the outcome,
// when Build returns the only object left allocated in the context is the
// returned Program (or nothing, on failure):
//
//	prog, err := shader.Build(ctx, vertexSrc, fragmentSrc)
//	if err != nil {
//	    var be *shader.BuildError
//	    if errors.As(err, &be) {
//	        log.Printf("%s stage failed:\n%s", be.Stage, be.Log)
//	    }
//	    return err
//	}
//	defer prog.Release()
//
//	pos := prog.AttribLocation("a_position")
//
// # Thread Safety
//
// GPU object handles must not be manipulated concurrently against the same
// context. Callers serialize all builds and releases for a given Context.
package shader
