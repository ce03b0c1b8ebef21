package service

import "time"

// Observer receives service lifecycle events. The metrics collector
// implements it; the zero value of a service uses a no-op observer.
type Observer interface {
	OverlayComputed(elapsed time.Duration, nodes, edges int, err error)
	OverlayServed(cached bool)
	PathQueried(outcome string)
}

// Path query outcomes reported to the Observer.
const (
	PathFound    = "found"
	PathNotFound = "not_found"
	PathNoRoute  = "no_path"
)

type nopObserver struct{}

func (nopObserver) OverlayComputed(time.Duration, int, int, error) {}
func (nopObserver) OverlayServed(bool)                             {}
func (nopObserver) PathQueried(string)                             {}
