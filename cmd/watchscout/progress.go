package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/watchscout/search"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// Indicator shows that a search session is in progress.
type Indicator interface {
	// Start begins rendering with an initial message.
	Start(message string)
	// Update reports a processed page.
	Update(p search.PageProgress)
	// Stop ends rendering and returns once the indicator is cleared.
	Stop(err error)
}

type nopIndicator struct{}

func (nopIndicator) Start(string)               {}
func (nopIndicator) Update(search.PageProgress) {}
func (nopIndicator) Stop(error)                 {}

// Spinner renders a go-pretty tracker: indeterminate until the page count
// is known, then a page counter.
type Spinner struct {
	w       io.Writer
	pw      progress.Writer
	tracker *progress.Tracker
	done    chan struct{}
}

// NewSpinner creates a Spinner rendering to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

func (s *Spinner) Start(message string) {
	s.pw = progress.NewWriter()
	s.pw.SetOutputWriter(s.w)
	s.pw.SetAutoStop(true)
	s.pw.SetUpdateFrequency(100 * time.Millisecond)
	s.pw.SetTrackerLength(20)
	s.pw.SetStyle(progress.StyleDefault)
	s.pw.Style().Visibility.ETA = false
	s.pw.Style().Visibility.Percentage = false
	s.pw.Style().Visibility.Value = false

	s.tracker = &progress.Tracker{Message: message}
	s.pw.AppendTracker(s.tracker)

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.pw.Render()
	}()
}

func (s *Spinner) Update(p search.PageProgress) {
	if s.tracker == nil {
		return
	}
	if p.Total > 1 {
		s.tracker.UpdateTotal(int64(p.Total))
		s.tracker.SetValue(int64(p.Completed))
	}
	s.tracker.UpdateMessage(fmt.Sprintf("page %d of %d", p.Completed, p.Total))
}

// Stop marks the tracker done, or errored when err is set, and waits for
// the render loop to exit.
func (s *Spinner) Stop(err error) {
	if s.tracker == nil {
		return
	}
	if err != nil {
		s.tracker.MarkAsErrored()
	} else {
		s.tracker.MarkAsDone()
	}
	<-s.done
	s.tracker = nil
}
