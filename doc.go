// Package glref provides a deterministic software reference implementation
// of a GL-shaped rendering context.
//
// # Overview
//
// A conformance test issues the same sequence of calls against a real
// driver context and a [ReferenceContext], then compares the resulting pixel
// buffers with a tolerance (see package imagecmp). Both implementations
// satisfy the [Context] interface, so a test is written once.
//
// The reference context is single-threaded and synchronous: every call is
// evaluated to completion before it returns. State changes are immediately
// visible to later calls and there is no command buffering.
//
// # Quick Start
//
//	ctx, err := glref.NewReferenceContext(glref.DefaultConfig(),
//	    glref.WithSurface(glref.SurfaceConfig{Width: 64, Height: 64, RedBits: 8,
//	        GreenBits: 8, BlueBits: 8, AlphaBits: 8}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	ctx.ClearColor(0, 0, 0, 1)
//	ctx.Clear(glref.ColorBufferBit)
//
//	buf := make([]byte, 64*64*4)
//	ctx.ReadPixels(0, 0, 64, 64, glref.RGBA, glref.UnsignedByte, buf)
//
// # Errors
//
// Calls that violate GL preconditions do not panic or return Go errors.
// They record a sticky error code retrievable with [Context.GetError] and
// have no other effect. Go errors are reserved for construction
// ([NewReferenceContext]) and program creation ([Context.CreateProgram]).
// Violations of the implementation contract, such as calling a method after
// [ReferenceContext.Destroy], panic.
//
// # Shaders
//
// Shading is supplied by the caller as a [ShaderProgram]: Go code that
// processes 2x2 fragment packets (see package rr). A program declares its
// vertex inputs, varyings, outputs and uniforms in a [ProgramDeclaration].
//
// # Coordinate System
//
// Window coordinates follow GL: the origin is the bottom-left pixel and
// rows in client memory run bottom-up.
package glref
