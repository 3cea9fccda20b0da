package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/watchscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages a browser serves before
// it is replaced.
const DefaultMaxPages = 75

// session is one launched Chrome process and its connection. A retired
// session is closed once its last in-flight page is released.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	active   int
	retired  bool
}

func launch() (*session, error) {
	l := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: browser, launcher: l}, nil
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// BrowserManager hands out the headless browser for each page fetch and
// replaces it after maxPages pages, keeping Chrome's memory bounded across
// long all-pages sessions. Pages still open on a replaced browser finish
// before it is shut down.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *session
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = s
	return bm, nil
}

// Acquire returns the browser to open the next page on, and a release
// function to call once that page is closed. Returns EINVALID after Close.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, watchscout.Errorf(watchscout.EINVALID, "browser is closed")
	}

	if bm.maxPages > 0 && bm.current.served >= bm.maxPages {
		bm.recycle()
	}

	s := bm.current
	s.served++
	s.active++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(s) })
	}
	return s.browser, release, nil
}

func (bm *BrowserManager) release(s *session) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	s.active--
	if s.retired && s.active == 0 {
		_ = s.close()
	}
}

// recycle launches a replacement and retires the current session. The
// current session is kept if the replacement fails to launch.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	old.retired = true
	if old.active == 0 {
		_ = old.close()
	}
}

// Closed reports whether Close has been called.
func (bm *BrowserManager) Closed() bool {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.closed
}

// Close shuts down the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.close()
}

// LauncherPID returns the process ID of the current browser launcher,
// or zero after Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.launcher.PID()
}
