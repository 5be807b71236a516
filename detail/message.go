package detail

// SizeMsg gives the panel its share of the screen.
type SizeMsg struct {
	Width  int
	Height int
}

// PhotoMsg carries the catalog row for Ref, or why there is none.
type PhotoMsg struct {
	Ref  string
	Data map[string]any
	Err  error
}
