package canvas

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when the director is in debug mode.
type debugStats struct {
	updateTime    time.Duration
	drawTime      time.Duration
	visibleCount  int
	followerCount int
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// stats are logged at debug level, vectors released to the pool are filled
// with NaN, and Stop reports listeners left on the event targets.
func (d *Director) SetDebugMode(enabled bool) {
	d.debug = enabled
	d.pool.poison = enabled
}

// debugLog writes one frame's stats.
func (d *Director) debugLog(stats debugStats) {
	if !d.debug {
		return
	}
	d.log.Debug("frame",
		zap.Uint64("frame", d.frameCount),
		zap.Duration("update", stats.updateTime),
		zap.Duration("draw", stats.drawTime),
		zap.Int("visible", stats.visibleCount),
		zap.Int("followers", stats.followerCount),
		zap.Stringer("gesture", d.gesture.mode),
		zap.Float64("zoom", d.viewport.Zoom),
	)
}

// debugCheckListeners reports what is left on the event targets after
// Stop. Anything still there was registered by the host, not the director.
func (d *Director) debugCheckListeners() {
	if n := d.document.Len(); n > 0 {
		d.log.Warn("listeners left on document after stop",
			zap.String("target", d.document.Name()), zap.Int("count", n))
	}
	d.log.Debug("listeners after stop",
		zap.Int("canvas", d.canvas.Len()),
		zap.Int("document", d.document.Len()))
}
