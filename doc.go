// Package canvas is the interactive core of a zoomable, pannable node-graph
// editor built on [Ebitengine].
//
// It owns the camera, culling, hit testing, selection, resize handles and
// the smoothing loop. Drawing individual nodes is left to the host through
// a [RenderFunc]; the core only fills the background.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the director from the Ebitengine game loop:
//
//	var d *canvas.Director
//	var err error
//	surface := ebiten.NewImage(1280, 720)
//	d, err = canvas.New(surface, entities, canvas.Options{
//		Render: drawCard,
//		Callbacks: canvas.Callbacks{
//			OnSelect: func(e *canvas.Entity, vp *canvas.Viewport) {
//				d.AttachResizeControl(e)
//			},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	canvas.Run(d, canvas.RunConfig{Title: "Thoughts"})
//
// For full control, deliver [InputEvent]s yourself with [Director.Deliver]
// (or dispatch on [Director.Canvas] and [Director.Document]) and call
// [Director.Tick] once per frame, or supply a [Scheduler].
//
// # Coordinates
//
// World space is where entities live. The authoritative [Viewport] maps it
// to screen pixels: the camera position lands on the screen centre, scaled
// by the zoom level. Gestures move the authoritative viewport; a second,
// rendered viewport eases toward it by [SmoothingFactor] every tick and is
// the one handed to the render callback.
//
// # Selection and handles
//
// At most one entity is selected. Selecting another releases the previous
// one first: OnDeselect fires, its ZIndex drops to 0 and its [Control] is
// detached. A [Control] owns the handles ([Follower]) of an entity; the
// eight-handle resize set comes from [NewResizeControl].
//
// # Gestures
//
// A press hits handles of the selection first, then entities, then empty
// space, and drags respectively the handle, the selected entity or the
// camera. The wheel and two-finger pinch zoom within [MinZoom] and
// [MaxZoom].
//
// [Ebitengine]: https://ebitengine.org
package canvas
