package topiclist

// ZoomMode selects between the truncated and full-history topic views.
type ZoomMode int

const (
	Truncated ZoomMode = iota
	Expanded
)

func (m ZoomMode) String() string {
	switch m {
	case Expanded:
		return "expanded"
	default:
		return "truncated"
	}
}

// Zoom holds the sidebar-wide zoom mode. Widgets read it through a pointer
// owned by their Registry.
type Zoom struct {
	mode ZoomMode
}

func (z *Zoom) Mode() ZoomMode { return z.mode }

// Expanded reports whether the full-history view is requested.
func (z *Zoom) Expanded() bool { return z.mode == Expanded }

func (z *Zoom) Expand() { z.mode = Expanded }

func (z *Zoom) Truncate() { z.mode = Truncated }
