package render

import "image"

// Sink is the external display that receives each finished frame. The buffer
// is only valid until the next Render call and must not be retained.
type Sink interface {
	Present(frame *image.NRGBA)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(*image.NRGBA)

// Present implements Sink.
func (f SinkFunc) Present(frame *image.NRGBA) { f(frame) }

// Discard drops frames. Headless runs use it to measure the render path alone.
var Discard Sink = SinkFunc(func(*image.NRGBA) {})
