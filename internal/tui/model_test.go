package tui

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/monight/internal/cli"
	"github.com/studiowebux/monight/internal/config"
	"github.com/studiowebux/monight/internal/document"
	"github.com/studiowebux/monight/internal/filter"
	"github.com/studiowebux/monight/internal/viewer"
)

// newTestModel builds a host over the static document engine with every
// config path pointed at a temp directory
func newTestModel(t *testing.T) *Model {
	return newTestModelWithSettings(t, "")
}

// newTestModelWithSettings seeds the settings file before the host loads
// it
func newTestModelWithSettings(t *testing.T, settingsJSON string) *Model {
	t.Helper()

	dir := t.TempDir()
	config.ConfigDir = dir
	config.SettingsFile = filepath.Join(dir, "settings.json")
	config.DatabasePath = filepath.Join(dir, "monight.db")
	config.PortFile = filepath.Join(dir, ".port")
	config.ExportDir = filepath.Join(dir, "exports")

	if settingsJSON != "" {
		if err := os.WriteFile(config.SettingsFile, []byte(settingsJSON), 0644); err != nil {
			t.Fatalf("write settings: %v", err)
		}
	}

	m, err := New(Options{
		Decoder: &document.StaticDecoder{Pages: 5},
		Version: "0.0.0-test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func openDoc(t *testing.T, m *Model, path string) {
	t.Helper()

	cmd := m.openFile(cli.OpenFile{
		Path:  path,
		Title: filepath.Base(path),
		Data:  []byte("%PDF-1.4"),
	}, 0)
	if cmd == nil {
		t.Fatalf("openFile(%s) produced no work", path)
	}
}

// commitRenders runs the active session's pending rasters synchronously
func commitRenders(t *testing.T, m *Model) {
	t.Helper()

	sess := m.coordinator.ActiveSession()
	if sess == nil {
		t.Fatal("no active session")
	}
	ops, err := sess.InitialRender()
	if err != nil {
		t.Fatalf("InitialRender: %v", err)
	}
	for _, op := range ops {
		if err := sess.CompleteRender(op, op.Render()); err != nil {
			t.Fatalf("CompleteRender: %v", err)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain executes a command tree and feeds the resulting messages back
// into the model until the render pipeline settles. Frame ticks are
// dropped so the clock never reschedules itself.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case frameTickMsg:
	default:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

// press sends a key and drains the work it produced
func press(t *testing.T, m *Model, key tea.KeyMsg) {
	t.Helper()

	_, cmd := m.Update(key)
	drain(t, m, cmd)
}

func TestOpenFileCreatesTabAndRecordsRecent(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/report.pdf")

	if got := m.coordinator.Count(); got != 1 {
		t.Fatalf("tab count = %d, want 1", got)
	}
	tab := m.coordinator.Active()
	if tab.Title != "report.pdf" {
		t.Errorf("title = %q, want report.pdf", tab.Title)
	}
	if tab.Filter == "" {
		t.Error("new tab has no filter expression")
	}
	if _, ok := m.filters[tab.ID]; !ok {
		t.Error("no filter settings tracked for the new tab")
	}

	entries, err := m.recentsMgr.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "/docs/report.pdf" {
		t.Errorf("recents = %+v, want the opened path", entries)
	}
	if entries[0].Pages != 5 {
		t.Errorf("recorded pages = %d, want 5", entries[0].Pages)
	}
}

func TestOpenFileDuplicateFoldsIntoFocus(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")
	openDoc(t, m, "/docs/b.pdf")
	openDoc(t, m, "/docs/a.pdf")

	if got := m.coordinator.Count(); got != 2 {
		t.Fatalf("tab count = %d, want 2", got)
	}
	if got := m.coordinator.Active().Path; got != "/docs/a.pdf" {
		t.Errorf("active = %q, want the re-opened path", got)
	}
}

func TestOpenFileContinuousDefaultRenders(t *testing.T) {
	m := newTestModelWithSettings(t,
		`{"version":"1.0","general":{"defaultViewMode":"continuous"}}`)

	cmd := m.openFile(cli.OpenFile{
		Path:  "/docs/a.pdf",
		Title: "a.pdf",
		Data:  []byte("%PDF-1.4"),
	}, 0)
	if cmd == nil {
		t.Fatal("openFile produced no work")
	}
	drain(t, m, cmd)

	sess := m.coordinator.ActiveSession()
	if sess.ViewMode() != viewer.ModeContinuous {
		t.Fatalf("view mode = %v, want continuous", sess.ViewMode())
	}
	if sess.State() == viewer.StateRendering {
		t.Error("session still rendering after the open pipeline drained")
	}

	committed := 0
	for _, sf := range sess.PageSurfaces() {
		if sf.Buf != nil {
			committed++
		}
	}
	if committed == 0 {
		t.Error("no page raster committed after opening in continuous mode")
	}
}

func TestNextPageKeyAdvances(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")

	press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	if got := m.coordinator.ActiveSession().CurrentPage(); got != 2 {
		t.Errorf("page = %d, want 2", got)
	}
}

func TestGotoPageInput(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.mode != ModeGotoPage {
		t.Fatalf("mode = %v, want ModeGotoPage", m.mode)
	}

	m.input.SetValue("")
	m.Update(keyRunes("4"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want ModeNormal after commit", m.mode)
	}
	if got := m.coordinator.ActiveSession().CurrentPage(); got != 4 {
		t.Errorf("page = %d, want 4", got)
	}
}

func TestGotoPageRejectsOutOfRange(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m.input.SetValue("")
	m.Update(keyRunes("99"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.coordinator.ActiveSession().CurrentPage(); got != 1 {
		t.Errorf("page = %d, want unchanged 1", got)
	}
	if !strings.Contains(m.statusMsg, "Page must be between 1 and 5") {
		t.Errorf("status = %q, want range message", m.statusMsg)
	}
}

func TestCloseTabRecordsLastPage(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")
	press(t, m, tea.KeyMsg{Type: tea.KeyRight}) // page 2

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})

	if got := m.coordinator.Count(); got != 0 {
		t.Fatalf("tab count = %d, want 0", got)
	}
	if got := m.recentsMgr.LastPage("/docs/a.pdf"); got != 2 {
		t.Errorf("remembered page = %d, want 2", got)
	}
}

func TestReopenClosedUsesRememberedPage(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")
	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})

	m.cmds = nil
	m.doReopenClosed()
	if len(m.cmds) == 0 {
		t.Fatal("reopen produced no command")
	}

	msg := m.cmds[0]()
	reopen, ok := msg.(reopenFileMsg)
	if !ok {
		t.Fatalf("got %T, want reopenFileMsg", msg)
	}
	// The read fails (the path never existed on disk), but the remembered
	// page must already be attached.
	if reopen.page != 2 {
		t.Errorf("reopen page = %d, want 2", reopen.page)
	}
}

func TestApplyPresetSetsTabFilter(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4"), Alt: true})

	tab := m.coordinator.Active()
	sepia, _ := filter.Preset("sepia")
	if tab.Filter != sepia.Expression() {
		t.Errorf("tab filter = %q, want sepia expression %q", tab.Filter, sepia.Expression())
	}
	if m.filters[tab.ID] != sepia {
		t.Errorf("tracked filter = %+v, want the sepia preset", m.filters[tab.ID])
	}
}

func TestRemoteOpenFlowsThroughBatch(t *testing.T) {
	m := newTestModel(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "handed.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, cmd := m.Update(remoteOpenMsg{Paths: []string{path}})
	if cmd == nil {
		t.Fatal("remote open produced no command")
	}

	m.Update(cmd())

	if got := m.coordinator.Count(); got != 1 {
		t.Fatalf("tab count = %d, want 1", got)
	}
	if got := m.coordinator.Active().Path; got != path {
		t.Errorf("active path = %q, want %q", got, path)
	}
}

func TestPreviewShowsCommittedRaster(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")
	commitRenders(t, m)

	out := m.renderPreview()
	if !strings.Contains(out, "▀") {
		t.Error("preview has no half-block cells after a committed render")
	}
}

func TestExportPageWritesPNG(t *testing.T) {
	m := newTestModel(t)
	openDoc(t, m, "/docs/a.pdf")
	commitRenders(t, m)

	m.cmds = nil
	m.doExportPage()

	if m.errorMsg != "" {
		t.Fatalf("export error: %s", m.errorMsg)
	}

	files, err := os.ReadDir(config.ExportDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0].Name(), ".png") {
		t.Errorf("export dir = %v, want one png", files)
	}
}

func TestQuitKeyAlwaysWorks(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("ctrl+c did not set quitting")
	}
	if cmd == nil {
		t.Error("ctrl+c did not return the quit command")
	}
}

func TestHalfBlocksEncodesPixelPairs(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	out := halfBlocks(img)
	if !strings.Contains(out, "▀") {
		t.Fatal("no half-block rune emitted")
	}
	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("top pixel not in foreground: %q", out)
	}
	if !strings.Contains(out, "48;2;0;0;255") {
		t.Errorf("bottom pixel not in background: %q", out)
	}
}

func TestHalfBlocksTransparentIsBlank(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	out := halfBlocks(img)
	if strings.Contains(out, "▀") {
		t.Errorf("transparent canvas produced cells: %q", out)
	}
}
