package sensor

// Viewport is an Observer over a window of terminal rows.
//
// Like its browser counterpart it reports a target on its first
// evaluation and when the target crosses the threshold. A shown target
// whose bounds moved is evaluated afresh and reported again, so a page
// landing under a tall viewport still asks for the next one.
type Viewport struct {
	callback  Callback
	threshold float64

	targets []*target
	top     int
	height  int
	tracked bool
}

type target struct {
	node      Node
	evaluated bool
	shown     bool
	bounds    Rect
}

// NewViewport satisfies Constructor.
func NewViewport(callback Callback, opts Options) Observer {
	return &Viewport{
		callback:  callback,
		threshold: opts.Threshold,
	}
}

// Observe adds a target; observing the same node again does nothing.
func (vp *Viewport) Observe(node Node) {

	for _, tgt := range vp.targets {
		if tgt.node == node {
			return
		}
	}
	vp.targets = append(vp.targets, &target{node: node})

	if vp.tracked {
		vp.report()
	}
}

// Track moves the viewport and reports targets that crossed the threshold
// or moved while shown.
func (vp *Viewport) Track(top, height int) {

	vp.top = top
	vp.height = height
	vp.tracked = true

	vp.report()
}

// unexported

func (vp *Viewport) report() {

	var entries []Entry
	for _, tgt := range vp.targets {
		bounds := tgt.node.Bounds()
		ratio := Ratio(bounds, vp.top, vp.height)
		shown := ratio >= vp.threshold && ratio > 0

		moved := shown && bounds != tgt.bounds
		if tgt.evaluated && shown == tgt.shown && !moved {
			continue
		}
		tgt.evaluated = true
		tgt.shown = shown
		tgt.bounds = bounds

		entries = append(entries, Entry{
			Target:            tgt.node,
			IntersectionRatio: ratio,
		})
	}

	if len(entries) > 0 && vp.callback != nil {
		vp.callback(entries)
	}
}
