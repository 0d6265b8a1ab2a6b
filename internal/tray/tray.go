// Package tray shows a system tray icon with shortcuts to the live view and
// to quitting.
package tray

import (
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/sirupsen/logrus"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Tray manages the system tray icon and menu
type Tray struct {
	url          string
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a tray pointing at the live view on listenAddr.
func New(listenAddr string, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		url:          ViewURL(listenAddr),
		shutdownFunc: shutdownFn,
	}
}

// ViewURL turns a listen address such as ":8080" into a browsable URL.
func ViewURL(listenAddr string) string {
	if strings.HasPrefix(listenAddr, ":") {
		listenAddr = "localhost" + listenAddr
	}
	return "http://" + listenAddr
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the tray icon, unblocking Run.
func (t *Tray) Quit() {
	if t.shuttingDown.CompareAndSwap(false, true) {
		systray.Quit()
	}
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("StickProfile")
	systray.SetTooltip("StickProfile - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Live View", "Open the response curve in a browser")
	t.menuExit = systray.AddMenuItem("Exit", "Save profiles and quit")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	logrus.Debug("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	logrus.Debug("system tray exiting")
}

func (t *Tray) openBrowser() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}

	if err := cmd.Start(); err != nil {
		logrus.WithError(err).Warn("failed to open browser")
	}
}
