package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelLineHeight converts Ebitengine wheel offsets (lines, positive up)
// into the pixel deltas of a DOM wheel event (positive down).
const wheelLineHeight = 100

var mouseButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// inputPoller turns Ebitengine's polled input into InputEvents delivered
// through Director.Deliver. The window is the canvas, so client and canvas
// coordinates coincide.
type inputPoller struct {
	d *Director

	lastX, lastY int
	cursorKnown  bool

	touchIDs []ebiten.TouchID
	touchBuf []ebiten.TouchID
	touchPos map[ebiten.TouchID][2]int
}

func newInputPoller(d *Director) *inputPoller {
	return &inputPoller{d: d, touchPos: make(map[ebiten.TouchID][2]int)}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// poll reads one frame of input. Called from game.Update before the frame
// callback runs.
func (p *inputPoller) poll() {
	mods := readModifiers()
	p.pollMouse(mods)
	p.pollWheel(mods)
	p.pollTouches(mods)
}

func (p *inputPoller) pollMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			p.d.Deliver(InputEvent{Kind: InputPointerDown, ClientX: x, ClientY: y, Button: b.btn, Modifiers: mods})
		}
	}
	if !p.cursorKnown || mx != p.lastX || my != p.lastY {
		p.cursorKnown = true
		p.lastX, p.lastY = mx, my
		p.d.Deliver(InputEvent{Kind: InputPointerMove, ClientX: x, ClientY: y, Modifiers: mods})
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			p.d.Deliver(InputEvent{Kind: InputPointerUp, ClientX: x, ClientY: y, Button: b.btn, Modifiers: mods})
			p.d.Deliver(InputEvent{Kind: InputClick, ClientX: x, ClientY: y, Button: b.btn, Modifiers: mods})
		}
	}
}

func (p *inputPoller) pollWheel(mods KeyModifiers) {
	_, yoff := ebiten.Wheel()
	if yoff == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	p.d.Deliver(InputEvent{
		Kind: InputWheel, ClientX: float64(mx), ClientY: float64(my),
		DeltaY: -yoff * wheelLineHeight, Modifiers: mods,
	})
}

func (p *inputPoller) pollTouches(mods KeyModifiers) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	// New contacts: one touchstart each, listing every contact down.
	p.touchBuf = inpututil.AppendJustPressedTouchIDs(p.touchBuf[:0])
	for _, id := range p.touchBuf {
		x, y := ebiten.TouchPosition(id)
		p.touchPos[id] = [2]int{x, y}
		p.d.Deliver(InputEvent{Kind: InputTouchStart, Touches: p.currentTouches(), Modifiers: mods})
	}

	// Movement of existing contacts: a single touchmove.
	moved := false
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		if pos, ok := p.touchPos[id]; ok && (pos[0] != x || pos[1] != y) {
			moved = true
		}
		p.touchPos[id] = [2]int{x, y}
	}
	if moved {
		p.d.Deliver(InputEvent{Kind: InputTouchMove, Touches: p.currentTouches(), Modifiers: mods})
	}

	// Lifted contacts: one touchend each, listing the contacts left.
	p.touchBuf = inpututil.AppendJustReleasedTouchIDs(p.touchBuf[:0])
	for _, id := range p.touchBuf {
		delete(p.touchPos, id)
		p.d.Deliver(InputEvent{Kind: InputTouchEnd, Touches: p.currentTouches(), Modifiers: mods})
	}
}

// currentTouches builds a fresh contact list; listeners may keep it.
func (p *inputPoller) currentTouches() []TouchPoint {
	pts := make([]TouchPoint, 0, len(p.touchIDs))
	for _, id := range p.touchIDs {
		pos, ok := p.touchPos[id]
		if !ok {
			continue
		}
		pts = append(pts, TouchPoint{ID: int(id), ClientX: float64(pos[0]), ClientY: float64(pos[1])})
	}
	return pts
}
