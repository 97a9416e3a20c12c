package input

// Event is a single window or input notification delivered to the frame loop.
// The set of event types is closed; switch on the concrete type to handle one.
type Event interface {
	event()
}

// CloseRequested is emitted when the user asks the window to close (close button or Escape).
type CloseRequested struct{}

// Key reports a key state change. Code is a GLFW key code (see common.Key*).
// Pressed is true for press and repeat, false for release.
type Key struct {
	Code    uint32
	Pressed bool
}

// PointerMoved reports the cursor position in window coordinates.
type PointerMoved struct {
	X, Y float32
}

// MouseButton reports a mouse button state change at the given cursor position.
type MouseButton struct {
	Button  int
	Pressed bool
	X, Y    float32
}

// Scrolled reports vertical scroll wheel motion. Positive is up.
type Scrolled struct {
	Delta float32
}

// Resized reports a new framebuffer size in pixels.
type Resized struct {
	Width, Height int
}

func (CloseRequested) event() {}
func (Key) event()            {}
func (PointerMoved) event()   {}
func (MouseButton) event()    {}
func (Scrolled) event()       {}
func (Resized) event()        {}
