package tui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/cli"
	"github.com/studiowebux/monight/internal/config"
	"github.com/studiowebux/monight/internal/document"
	"github.com/studiowebux/monight/internal/document/fitzdoc"
	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/recents"
	"github.com/studiowebux/monight/internal/remote"
	"github.com/studiowebux/monight/internal/settings"
	"github.com/studiowebux/monight/internal/tabs"
	"github.com/studiowebux/monight/internal/version"
	"github.com/studiowebux/monight/internal/viewer"
)

// Options carries the launch arguments into the host
type Options struct {
	// Paths are the documents to open at startup
	Paths []string

	// Page is the 1-based page the active tab jumps to once the startup
	// batch opened, 0 for none
	Page int

	// DPR overrides the device pixel ratio; 0 means 1.0
	DPR float64

	// Version is the build version shown in help and sent with the
	// update check
	Version string

	// Decoder overrides the document engine, used by tests
	Decoder document.Decoder
}

// New creates the host model and wires the core components together
func New(opts Options) (*Model, error) {
	store := settings.NewStore(config.GetSettingsFilePath())
	loaded := store.Load()

	dec := opts.Decoder
	if dec == nil {
		dec = fitzdoc.New()
	}

	registry := keybinds.NewRegistry(keybinds.IsMacPlatform())
	registry.LoadFromSettings(loaded.Keybinds)

	coordinator := tabs.NewCoordinator(dec)

	recentsMgr, err := recents.NewManager(config.DatabasePath)
	if err != nil {
		// The viewer works without a recents list; degrade and report.
		log.Printf("tui: recents unavailable: %v", err)
		recentsMgr = nil
	}

	input := textinput.New()
	input.CharLimit = 256

	dpr := opts.DPR
	if dpr <= 0 {
		dpr = 1.0
	}

	m := &Model{
		store:       store,
		registry:    registry,
		coordinator: coordinator,
		recentsMgr:  recentsMgr,
		mode:        ModeNormal,
		version:     opts.Version,
		filters:     make(map[string]filter.Settings),
		input:       input,
		helpView:    viewport.New(80, 20),
		dpr:         dpr,
	}

	store.SetReporter(m.report)
	registry.SetReporter(m.report)
	coordinator.SetReporter(m.report)

	coordinator.SetOnActivate(func(tab *tabs.Tab) {
		m.printEnabled = tab != nil
	})

	m.registerHandlers()

	if len(opts.Paths) > 0 {
		stop := loaded.General.StopOnOpenError
		m.initialCmds = append(m.initialCmds, openPathsCmd(opts.Paths, opts.Page, stop))
	}
	m.initialCmds = append(m.initialCmds, checkVersionCmd(opts.Version))

	return m, nil
}

// Run starts the host, including the hand-off listener that lets later
// launches forward their arguments here
func Run(opts Options) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())

	handOff := remote.NewServer(func(req remote.OpenRequest) {
		p.Send(remoteOpenMsg(req))
	})
	if port, err := handOff.Start(); err == nil {
		if err := config.WritePortFile(port); err != nil {
			log.Printf("tui: cannot record hand-off port: %v", err)
		}
		defer func() {
			config.RemovePortFile()
			_ = handOff.Stop()
		}()
	} else {
		log.Printf("tui: hand-off listener unavailable: %v", err)
	}

	_, err = p.Run()
	return err
}

// openPathsCmd reads a batch of documents off the event loop
func openPathsCmd(paths []string, page int, stopOnError bool) tea.Cmd {
	return func() tea.Msg {
		batch := cli.ReadBatch(context.Background(), paths, stopOnError)
		batch.Page = page
		return batchOpenedMsg{batch: batch}
	}
}

// reopenCmd re-reads a closed tab's file from disk
func reopenCmd(path string, page int) tea.Cmd {
	return func() tea.Msg {
		file, err := cli.ReadOne(path)
		return reopenFileMsg{file: file, page: page, err: err}
	}
}

// checkVersionCmd asks for the latest release in the background
func checkVersionCmd(current string) tea.Cmd {
	return func() tea.Msg {
		available, latest, _, err := version.CheckForUpdate(current)
		return versionCheckMsg{available: available, latest: latest, err: err}
	}
}

// initialFilter picks the filter new tabs start with: the remembered
// last filter when the preference allows, the default preset otherwise
func (m *Model) initialFilter() filter.Settings {
	current := m.store.Current()
	if current.General.RememberLastFilter && current.LastFilter != nil {
		return *current.LastFilter
	}
	if preset, ok := filter.Preset(current.General.DefaultPreset); ok {
		return preset
	}
	return filter.Default()
}

// initialViewMode returns the view mode new tabs start in
func (m *Model) initialViewMode() viewer.Mode {
	if m.store.Current().General.DefaultViewMode == "continuous" {
		return viewer.ModeContinuous
	}
	return viewer.ModeSingle
}
