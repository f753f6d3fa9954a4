package platform

import (
	"time"

	"github.com/spaghettifunk/tangram/engine/core"
)

var startTime = time.Now()

// Platform holds the process-level state of a windowless run: the surface
// size reported to the renderer and whether frames should be produced.
type Platform struct {
	ApplicationName string
	Width           uint32
	Height          uint32
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, width uint32, height uint32) error {
	p.ApplicationName = applicationName
	p.Width = width
	p.Height = height
	core.LogInfo("platform '%s' started with a %dx%d surface", applicationName, width, height)
	return nil
}

func (p *Platform) Shutdown() error {
	return nil
}

// Resize updates the surface size. It reports whether the size changed.
func (p *Platform) Resize(width, height uint32) bool {
	if p.Width == width && p.Height == height {
		return false
	}
	p.Width = width
	p.Height = height
	return true
}

// GetAbsoluteTime returns the seconds elapsed since the process started.
func GetAbsoluteTime() float64 {
	return time.Since(startTime).Seconds()
}

// Sleep blocks the calling goroutine for the given number of milliseconds.
func Sleep(ms float64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
