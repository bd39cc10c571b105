package feed

import (
	"fmt"
	"io"
	"time"
)

// Observer receives notifications about feed sync progress. The CLI
// installs a logging observer for `atrium sync`; the TUI refresh loop
// runs with the no-op observer.
type Observer interface {
	SyncStarted(feedName string)
	SyncFinished(feedName string, imported int, fromCache bool, elapsed time.Duration)
	SyncFailed(feedName string, err error)
}

// NoopObserver discards all notifications.
type NoopObserver struct{}

func (NoopObserver) SyncStarted(string)                            {}
func (NoopObserver) SyncFinished(string, int, bool, time.Duration) {}
func (NoopObserver) SyncFailed(string, error)                      {}

// LogObserver writes one line per notification to the given writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates a LogObserver writing to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) SyncStarted(feedName string) {
	fmt.Fprintf(o.w, "sync %s: started\n", feedName)
}

func (o *LogObserver) SyncFinished(feedName string, imported int, fromCache bool, elapsed time.Duration) {
	suffix := ""
	if fromCache {
		suffix = " (not modified)"
	}
	fmt.Fprintf(o.w, "sync %s: %d occurrences in %s%s\n", feedName, imported, elapsed.Round(time.Millisecond), suffix)
}

func (o *LogObserver) SyncFailed(feedName string, err error) {
	fmt.Fprintf(o.w, "sync %s: failed: %v\n", feedName, err)
}
