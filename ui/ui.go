// /home/wahid/go/src/github.com/wahid/muezzin/ui/ui.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-27 00:52:18 wahid>

package ui

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/wahid/muezzin/clients/clientlib"
	"github.com/wahid/muezzin/common"
	"github.com/wahid/muezzin/common/logdomain"
	"github.com/wahid/muezzin/objects"
	"github.com/wahid/muezzin/objects/lead"
)

const (
	countdownInterval = 1000  // ms
	prayerInterval    = 60000 // ms
)

type column struct {
	colType glib.Type
	title   string
}

var cols = []column{
	column{
		colType: glib.TYPE_STRING,
		title:   "Prayer",
	},
	column{
		colType: glib.TYPE_STRING,
		title:   "Time",
	},
}

func createCol(title string, id int) (*gtk.TreeViewColumn, *gtk.CellRendererText, error) {
	renderer, err := gtk.CellRendererTextNew()
	if err != nil {
		return nil, nil, err
	}

	col, err := gtk.TreeViewColumnNewWithAttribute(title, renderer, "text", id)
	if err != nil {
		return nil, nil, err
	}

	col.SetResizable(true)

	return col, renderer, nil
} // func createCol(title string, id int) (*gtk.TreeViewColumn, *gtk.CellRendererText, error)

var gtkInit sync.Once

// GUI wraps the components of the graphical user interface (hence the name),
// along with the bits and pieces needed to talk to the backend.
type GUI struct {
	log       *log.Logger
	lock      sync.RWMutex // nolint: unused,structcheck
	web       *clientlib.Client
	win       *gtk.Window
	mainBox   *gtk.Box
	countdown *gtk.Label
	store     *gtk.ListStore
	view      *gtk.TreeView
	scr       *gtk.ScrolledWindow
	enabled   *gtk.CheckButton
	sound     *gtk.CheckButton
	prayers   map[string]*gtk.CheckButton
	leadBox   *gtk.ComboBoxText
	apply     *gtk.Button
	statusbar *gtk.Statusbar
}

func Create(srv string) (*GUI, error) {
	var (
		err error
		win = &GUI{
			prayers: make(map[string]*gtk.CheckButton, len(objects.PrayerNames)),
		}
	)

	gtkInit.Do(func() { gtk.Init(nil) })

	if win.log, err = common.GetLogger(logdomain.GUI); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger for GUI: %s\n",
			err.Error())
		return nil, err
	} else if win.web, err = clientlib.NewClient(srv); err != nil {
		win.log.Printf("[ERROR] Cannot create Client for %s: %s\n",
			srv,
			err.Error())
		return nil, err
	} else if win.win, err = gtk.WindowNew(gtk.WINDOW_TOPLEVEL); err != nil {
		win.log.Printf("[ERROR] Cannot create Window: %s\n",
			err.Error())
		return nil, err
	} else if win.mainBox, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 1); err != nil {
		win.log.Printf("[ERROR] Cannot create gtk.Box: %s\n",
			err.Error())
		return nil, err
	} else if win.countdown, err = gtk.LabelNew("..."); err != nil {
		win.log.Printf("[ERROR] Cannot create countdown Label: %s\n",
			err.Error())
		return nil, err
	} else if win.scr, err = gtk.ScrolledWindowNew(nil, nil); err != nil {
		win.log.Printf("[ERROR] Cannot create ScrolledWindow: %s\n",
			err.Error())
		return nil, err
	} else if win.enabled, err = gtk.CheckButtonNewWithLabel("Notifications"); err != nil {
		win.log.Printf("[ERROR] Cannot create CheckButton: %s\n",
			err.Error())
		return nil, err
	} else if win.sound, err = gtk.CheckButtonNewWithLabel("Sound"); err != nil {
		win.log.Printf("[ERROR] Cannot create CheckButton: %s\n",
			err.Error())
		return nil, err
	} else if win.leadBox, err = gtk.ComboBoxTextNew(); err != nil {
		win.log.Printf("[ERROR] Cannot create ComboBoxText: %s\n",
			err.Error())
		return nil, err
	} else if win.apply, err = gtk.ButtonNewWithLabel("Apply"); err != nil {
		win.log.Printf("[ERROR] Cannot create Button: %s\n",
			err.Error())
		return nil, err
	} else if win.statusbar, err = gtk.StatusbarNew(); err != nil {
		win.log.Printf("[ERROR] Cannot create Status bar: %s\n",
			err.Error())
		return nil, err
	}

	for _, name := range objects.PrayerNames {
		var btn *gtk.CheckButton

		if btn, err = gtk.CheckButtonNewWithLabel(name); err != nil {
			win.log.Printf("[ERROR] Cannot create CheckButton for %s: %s\n",
				name,
				err.Error())
			return nil, err
		}

		win.prayers[name] = btn
	}

	for _, l := range lead.All {
		win.leadBox.AppendText(l.String())
	}

	// Initialize data store and TreeView
	var typeList = make([]glib.Type, len(cols))

	for i, c := range cols {
		typeList[i] = c.colType
	}

	if win.store, err = gtk.ListStoreNew(typeList...); err != nil {
		win.log.Printf("[ERROR] Cannot create ListStore: %s\n",
			err.Error())
		return nil, err
	} else if win.view, err = gtk.TreeViewNewWithModel(win.store); err != nil {
		win.log.Printf("[ERROR] Cannot create TreeView: %s\n",
			err.Error())
		return nil, err
	}

	for i, c := range cols {
		var col *gtk.TreeViewColumn

		if col, _, err = createCol(c.title, i); err != nil {
			win.log.Printf("[ERROR] Cannot create TreeViewColumn %q: %s\n",
				c.title,
				err.Error())
			return nil, err
		}

		win.view.AppendColumn(col)
	}

	var settingsBox *gtk.Box

	if settingsBox, err = gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 1); err != nil {
		win.log.Printf("[ERROR] Cannot create gtk.Box: %s\n",
			err.Error())
		return nil, err
	}

	settingsBox.PackStart(win.enabled, false, false, 1)
	settingsBox.PackStart(win.sound, false, false, 1)
	for _, name := range objects.PrayerNames {
		settingsBox.PackStart(win.prayers[name], false, false, 1)
	}
	settingsBox.PackStart(win.leadBox, false, false, 1)
	settingsBox.PackStart(win.apply, false, false, 1)

	win.win.Add(win.mainBox)
	win.scr.Add(win.view)
	win.mainBox.PackStart(win.countdown, false, false, 1)
	win.mainBox.PackStart(win.scr, true, true, 1)
	win.mainBox.PackStart(settingsBox, false, false, 1)
	win.mainBox.PackStart(win.statusbar, false, false, 1)

	win.win.Connect("destroy", gtk.MainQuit)
	win.apply.Connect("clicked", win.applySettings)

	if err = win.loadSettings(); err != nil {
		win.pushMsg(fmt.Sprintf("Cannot load settings from backend: %s",
			err.Error()))
	}

	win.win.ShowAll()
	win.win.SetSizeRequest(480, 540)
	win.win.SetTitle(fmt.Sprintf("%s %s",
		common.AppName,
		common.Version))

	glib.TimeoutAdd(uint(countdownInterval), win.refreshCountdown)
	glib.TimeoutAdd(uint(prayerInterval), win.fetchPrayers)
	win.fetchPrayers()

	return win, nil
} // func Create(srv string) (*GUI, error)

// Run executes gtk's main event loop.
func (g *GUI) Run() {
	gtk.Main()
} // func (g *GUI) Run()

// loadSettings fetches the Settings from the backend and mirrors them
// in the widgets.
func (g *GUI) loadSettings() error {
	var (
		err error
		s   *objects.Settings
	)

	if s, err = g.web.GetSettings(); err != nil {
		return err
	}

	g.enabled.SetActive(s.Enabled)
	g.sound.SetActive(s.Sound)

	for name, btn := range g.prayers {
		btn.SetActive(s.Prayers[name])
	}

	for idx, l := range lead.All {
		if l == s.Lead {
			g.leadBox.SetActive(idx)
			break
		}
	}

	return nil
} // func (g *GUI) loadSettings() error

// gatherSettings assembles a Settings object from the widgets.
func (g *GUI) gatherSettings() *objects.Settings {
	var s = &objects.Settings{
		Enabled: g.enabled.GetActive(),
		Sound:   g.sound.GetActive(),
		Prayers: make(map[string]bool, len(g.prayers)),
		Lead:    lead.Min10,
	}

	for name, btn := range g.prayers {
		s.Prayers[name] = btn.GetActive()
	}

	if idx := g.leadBox.GetActive(); 0 <= idx && idx < len(lead.All) {
		s.Lead = lead.All[idx]
	}

	return s
} // func (g *GUI) gatherSettings() *objects.Settings

func (g *GUI) applySettings() {
	var (
		err error
		s   = g.gatherSettings()
	)

	if err = g.web.UpdateSettings(s); err != nil {
		g.displayMsg(fmt.Sprintf("Cannot update settings: %s",
			err.Error()))
		return
	}

	g.pushMsg("Settings saved")
} // func (g *GUI) applySettings()

// refreshCountdown asks the backend for the next prayer and updates the
// countdown label. It runs once a second off the glib main loop.
func (g *GUI) refreshCountdown() bool {
	var (
		err  error
		info *objects.NextInfo
	)

	if info, err = g.web.GetNext(); err != nil {
		g.countdown.SetText("Backend is not responding")
		return true
	}

	// No prayer named means the backend has no timeline yet; it sends
	// a placeholder display string for that case.
	if info.Name == "" {
		if info.Display != "" {
			g.countdown.SetText(info.Display)
		}
		return true
	}

	g.countdown.SetText(fmt.Sprintf("%s in %s",
		info.Name,
		info.Display))

	return true
} // func (g *GUI) refreshCountdown() bool

// fetchPrayers loads today's prayer times into the TreeView.
func (g *GUI) fetchPrayers() bool {
	var (
		err error
		day objects.Daytab
	)

	if day, err = g.web.GetPrayers(); err != nil {
		g.log.Printf("[ERROR] Cannot fetch prayer times: %s\n",
			err.Error())
		return true
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	g.store.Clear()

	for _, p := range day {
		var iter = g.store.Append()

		g.store.Set( // nolint: errcheck
			iter,
			[]int{0, 1},
			[]any{p.Name, p.Time.String()},
		)
	}

	return true
} // func (g *GUI) fetchPrayers() bool
