package widget

import "github.com/oxygen/api-performance-counters-ui/src/charts"

// Host is whatever displays a Container (a window, a page). It is told when
// the widget goes away.
type Host interface {
	Detach(c *Container)
}

// Panel is a read-only view of one chart panel.
type Panel struct {
	Bucket charts.Bucket
	Title  string
	Mode   charts.Mode
	Height int
	// Chart is nil before the first update and after Clear.
	Chart charts.Handle
}

// Container exposes the six labeled panels in display order.
type Container struct {
	w    *Widget
	host Host
}

// Attach records the host the container is shown in. Attaching to a new
// host detaches from the previous one.
func (c *Container) Attach(h Host) {
	if c.host != nil && c.host != h {
		c.host.Detach(c)
	}
	c.host = h
}

// Attached reports whether the container is shown somewhere.
func (c *Container) Attached() bool { return c.host != nil }

// Panels returns the panels in bucket order; empty once the widget is destroyed.
func (c *Container) Panels() []Panel {
	if c.w.Destroyed() {
		return nil
	}
	out := make([]Panel, 0, charts.NumBuckets)
	for _, p := range c.w.panels {
		out = append(out, Panel{Bucket: p.bucket, Title: p.title, Mode: p.mode, Height: p.height, Chart: p.chart})
	}
	return out
}

// Panel returns the panel of b.
func (c *Container) Panel(b charts.Bucket) (Panel, bool) {
	if c.w.Destroyed() || !b.Valid() {
		return Panel{}, false
	}
	p := c.w.panels[b]
	return Panel{Bucket: p.bucket, Title: p.title, Mode: p.mode, Height: p.height, Chart: p.chart}, true
}

func (c *Container) detach() {
	if c.host == nil {
		return
	}
	h := c.host
	c.host = nil
	h.Detach(c)
}
