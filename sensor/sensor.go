// Package sensor reports how much of an observed node lies within view.
//
// Observer mirrors the shape of a browser intersection observer so hosts
// can substitute their own; Viewport is the implementation used when the
// gallery is laid out as terminal rows.
package sensor

// Rect is the vertical extent of a node, in rows.
type Rect struct {
	Top    int
	Height int
}

// Node is anything with a position in the laid out document.
type Node interface {
	Bounds() Rect
}

// Entry is one visibility report.
type Entry struct {
	Target            Node
	IntersectionRatio float64
}

// Callback receives reports.
type Callback func(entries []Entry)

// Options configure an Observer.
type Options struct {
	// Threshold is the ratio a target must reach to count as shown.
	Threshold float64
}

// Observer watches nodes.
type Observer interface {
	Observe(target Node)
}

// Constructor builds an Observer, as a host would inject it.
type Constructor func(callback Callback, opts Options) Observer

// Tracker is implemented by observers that learn of viewport movement
// from the host.
type Tracker interface {
	Track(top, height int)
}

// Ratio returns the fraction of rect lying in rows [top, top+height).
// A zero height rect counts as fully shown when its row is in view.
func Ratio(rect Rect, top, height int) float64 {

	if height <= 0 {
		return 0
	}
	bottom := top + height

	if rect.Height <= 0 {
		if rect.Top >= top && rect.Top < bottom {
			return 1
		}
		return 0
	}

	lo := max(rect.Top, top)
	hi := min(rect.Top+rect.Height, bottom)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(rect.Height)
}
