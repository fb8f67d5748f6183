package canvas

// draw paints the background, refreshes culling against the authoritative
// viewport and hands every visible entity, then every follower of the
// selection, to the render callback with the smoothed viewport.
func (d *Director) draw(stats *debugStats) {
	d.surface.Fill(d.background.toRGBA())

	d.scene.UpdateVisible(d.viewport)
	visible := d.scene.visible
	stats.visibleCount = len(visible)

	if d.render == nil {
		return
	}
	vp := &d.anim.rendered
	for _, e := range visible {
		d.render(d.surface, vp, e)
	}

	sel := d.scene.selected
	if sel == nil || sel.Control == nil {
		return
	}
	fs := sel.Control.followers
	for i := range fs {
		d.render(d.surface, vp, &fs[i])
	}
	stats.followerCount = len(fs)
}
