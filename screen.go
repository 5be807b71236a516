package defile

// Screen indicates which screen is currently displayed
type Screen int

const (
	GalleryScreen Screen = iota
	DetailScreen
)
