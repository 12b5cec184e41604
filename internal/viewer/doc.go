// Package viewer implements the per-document render session: page
// navigation, zoom, rotation, view modes and the render pipeline that
// turns pages into pixel buffers.
//
// # Overview
//
// A Session owns one decoded document and the view state attached to it.
// All session methods are event-loop calls that mutate state and return
// RenderOps; the actual raster work (RenderOp.Render) is the only part
// that runs elsewhere. The host runs each op, then hands the result back
// through CompleteRender on the loop.
//
// # Key Concepts
//
// Cancel then start: a surface holds at most one in-flight op. Starting
// a new render for a surface cancels the previous op first, so a burst
// of zoom or navigation calls costs one completed raster, not one per
// call.
//
// Stale completions: CompleteRender ignores any op that is no longer the
// surface's current one, arrived after the surface was torn down, or
// arrived after Destroy. Cancelled ops are part of normal operation and
// are never surfaced as errors.
//
// Backing store: CSS sizes are adjusted down to a multiple of the device
// pixel ratio's rational denominator so backing buffers have exact
// integer sizes. The ratio is approximated by continued fractions with a
// small denominator bound.
//
// # Components
//
// Session: lifecycle (Empty, Loaded, Rendering, Idle, Destroyed) plus
// zoom, rotation, page and filter state.
//
// RenderOp: one scheduled raster with its own cancellation context and
// destination buffer.
//
// Surface: a committed raster and its draw metadata. Single page mode
// uses one surface; continuous mode keeps one per page in the render
// range (visible pages plus one on each side).
//
// # Example Usage
//
//	sess := viewer.NewSession(fitzdoc.New(), id)
//	if err := sess.Load(data, name, path); err != nil {
//		return err
//	}
//	ops, _ := sess.InitialRender()
//	for _, op := range ops {
//		go func(op *viewer.RenderOp) {
//			err := op.Render()
//			loop <- func() { sess.CompleteRender(op, err) }
//		}(op)
//	}
//
// # Thread Safety
//
// Sessions are not safe for concurrent use. Every method except
// RenderOp.Render must be called from the same goroutine, normally the
// host's event loop.
package viewer
