package scroll

// Event is fed to Reduce.
type Event interface {
	isEvent()
}

// StartFetch asks for the next page.
type StartFetch struct{}

// FetchSuccess delivers the locators of a non-empty page.
type FetchSuccess struct {
	Refs []string
}

// FetchError reports a failed fetch; Err is for diagnostics only.
type FetchError struct {
	Err error
}

// ReachedEnd reports an empty page.
type ReachedEnd struct{}

func (StartFetch) isEvent()   {}
func (FetchSuccess) isEvent() {}
func (FetchError) isEvent()   {}
func (ReachedEnd) isEvent()   {}
