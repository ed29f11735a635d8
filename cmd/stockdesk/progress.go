package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

// loader draws a spinner on one terminal line while at least one API call
// is in flight. It implements apiclient.Progress.
type loader struct {
	w     io.Writer
	label string
	style spinner.Spinner

	mu     sync.Mutex
	active int
	frame  int
	stop   chan struct{}
	done   chan struct{}
}

func newLoader(w io.Writer, label string) *loader {
	return &loader{w: w, label: label, style: spinner.MiniDot}
}

// terminalLoader returns a loader when w is an interactive terminal, nil
// otherwise so piped output stays clean.
func terminalLoader(w io.Writer) *loader {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return newLoader(w, "Loading...")
}

func (l *loader) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active++
	if l.active > 1 {
		return
	}
	l.frame = 0
	l.draw()
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.spin(l.stop, l.done)
}

func (l *loader) Done() {
	l.mu.Lock()
	if l.active == 0 {
		l.mu.Unlock()
		return
	}
	l.active--
	if l.active > 0 {
		l.mu.Unlock()
		return
	}
	stop, done := l.stop, l.done
	l.mu.Unlock()

	close(stop)
	<-done

	l.mu.Lock()
	if l.active == 0 {
		fmt.Fprint(l.w, "\r\033[K")
	}
	l.mu.Unlock()
}

func (l *loader) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	fps := l.style.FPS
	if fps <= 0 {
		fps = 100 * time.Millisecond
	}
	t := time.NewTicker(fps)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			l.mu.Lock()
			l.frame = (l.frame + 1) % len(l.style.Frames)
			l.draw()
			l.mu.Unlock()
		}
	}
}

// draw must be called with mu held.
func (l *loader) draw() {
	fmt.Fprintf(l.w, "\r%s %s", l.style.Frames[l.frame], l.label)
}
