// Package message holds messages shared between the gallery model and its panels.
package message

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// SensorMsg asks the model to act on pending visibility reports.
// Observers that report from outside the event loop send it after calling back.
type SensorMsg struct{}
