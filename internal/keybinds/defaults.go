package keybinds

// NewDefaultRegistry creates a registry loaded with all default keybindings
func NewDefaultRegistry(mac bool) *Registry {
	r := NewRegistry(mac)
	r.LoadFromSettings(DefaultKeybinds())
	return r
}

// defaultOrder fixes the install order of the default entries. Match
// priority follows this order, so an id listed earlier wins when two
// entries end up bound to the same chord.
var defaultOrder = []string{
	"open_file",
	"open_recents",
	"reopen_closed_tab",
	"close_tab",
	"next_tab",
	"previous_tab",
	"switch_tab_1",
	"switch_tab_2",
	"switch_tab_3",
	"switch_tab_4",
	"switch_tab_5",
	"switch_tab_6",
	"switch_tab_7",
	"switch_tab_8",
	"switch_tab_9",
	"next_page",
	"previous_page",
	"first_page",
	"last_page",
	"goto_page",
	"scroll_up",
	"scroll_down",
	"zoom_in",
	"zoom_out",
	"reset_zoom",
	"fit_width",
	"fit_page",
	"rotate_clockwise",
	"rotate_counterclockwise",
	"toggle_view_mode",
	"toggle_fullscreen",
	"preset_default",
	"preset_original",
	"preset_redeye",
	"preset_sepia",
	"print",
	"copy_path",
	"export_page",
	"open_settings",
	"open_help",
	"quit",
}

// DefaultOrder returns the canonical entry order
func DefaultOrder() []string {
	out := make([]string, len(defaultOrder))
	copy(out, defaultOrder)
	return out
}

// DefaultKeybinds returns the factory keybind table. The settings layer
// merges the stored file over this map, so every entry here can be rebound
// or cleared by the user without touching the action set.
func DefaultKeybinds() map[string]Keybind {
	return map[string]Keybind{
		"open_file": {
			DisplayName: "Open File",
			Binds:       []string{"CmdOrCtrl+O"},
			Action:      string(ActionOpenFile),
		},
		"open_recents": {
			DisplayName: "Open Recent Files",
			Binds:       []string{"CmdOrCtrl+Shift+O"},
			Action:      string(ActionOpenRecents),
		},
		"reopen_closed_tab": {
			DisplayName: "Reopen Closed Tab",
			Binds:       []string{"CmdOrCtrl+Shift+T"},
			Action:      string(ActionReopenTab),
		},
		"close_tab": {
			DisplayName: "Close Tab",
			Binds:       []string{"CmdOrCtrl+W"},
			Action:      string(ActionCloseTab),
		},
		"next_tab": {
			DisplayName: "Next Tab",
			Binds:       []string{"Ctrl+Tab", "CmdOrCtrl+PageDown"},
			Action:      string(ActionNextTab),
		},
		"previous_tab": {
			DisplayName: "Previous Tab",
			Binds:       []string{"Ctrl+Shift+Tab", "CmdOrCtrl+PageUp"},
			Action:      string(ActionPreviousTab),
		},
		"switch_tab_1": {
			DisplayName: "Switch to Tab 1",
			Binds:       []string{"CmdOrCtrl+1"},
			Action:      string(ActionSwitchTab),
			Payload:     "1",
		},
		"switch_tab_2": {
			DisplayName: "Switch to Tab 2",
			Binds:       []string{"CmdOrCtrl+2"},
			Action:      string(ActionSwitchTab),
			Payload:     "2",
		},
		"switch_tab_3": {
			DisplayName: "Switch to Tab 3",
			Binds:       []string{"CmdOrCtrl+3"},
			Action:      string(ActionSwitchTab),
			Payload:     "3",
		},
		"switch_tab_4": {
			DisplayName: "Switch to Tab 4",
			Binds:       []string{"CmdOrCtrl+4"},
			Action:      string(ActionSwitchTab),
			Payload:     "4",
		},
		"switch_tab_5": {
			DisplayName: "Switch to Tab 5",
			Binds:       []string{"CmdOrCtrl+5"},
			Action:      string(ActionSwitchTab),
			Payload:     "5",
		},
		"switch_tab_6": {
			DisplayName: "Switch to Tab 6",
			Binds:       []string{"CmdOrCtrl+6"},
			Action:      string(ActionSwitchTab),
			Payload:     "6",
		},
		"switch_tab_7": {
			DisplayName: "Switch to Tab 7",
			Binds:       []string{"CmdOrCtrl+7"},
			Action:      string(ActionSwitchTab),
			Payload:     "7",
		},
		"switch_tab_8": {
			DisplayName: "Switch to Tab 8",
			Binds:       []string{"CmdOrCtrl+8"},
			Action:      string(ActionSwitchTab),
			Payload:     "8",
		},
		"switch_tab_9": {
			DisplayName: "Switch to Last Tab",
			Binds:       []string{"CmdOrCtrl+9"},
			Action:      string(ActionSwitchTab),
			Payload:     "9",
		},
		"next_page": {
			DisplayName: "Next Page",
			Binds:       []string{"Right", "Space"},
			Action:      string(ActionNextPage),
		},
		"previous_page": {
			DisplayName: "Previous Page",
			Binds:       []string{"Left", "Shift+Space"},
			Action:      string(ActionPreviousPage),
		},
		"first_page": {
			DisplayName: "First Page",
			Binds:       []string{"Home"},
			Action:      string(ActionFirstPage),
		},
		"last_page": {
			DisplayName: "Last Page",
			Binds:       []string{"End"},
			Action:      string(ActionLastPage),
		},
		"goto_page": {
			DisplayName: "Go to Page",
			Binds:       []string{"CmdOrCtrl+G"},
			Action:      string(ActionGotoPage),
		},
		"scroll_up": {
			DisplayName: "Scroll Up",
			Binds:       []string{"Up"},
			Action:      string(ActionScrollUp),
		},
		"scroll_down": {
			DisplayName: "Scroll Down",
			Binds:       []string{"Down"},
			Action:      string(ActionScrollDown),
		},
		"zoom_in": {
			DisplayName: "Zoom In",
			Binds:       []string{"CmdOrCtrl+Plus", "CmdOrCtrl+="},
			Action:      string(ActionZoomIn),
		},
		"zoom_out": {
			DisplayName: "Zoom Out",
			Binds:       []string{"CmdOrCtrl+-"},
			Action:      string(ActionZoomOut),
		},
		"reset_zoom": {
			DisplayName: "Reset Zoom",
			Binds:       []string{"CmdOrCtrl+0"},
			Action:      string(ActionResetZoom),
		},
		"fit_width": {
			DisplayName: "Fit to Width",
			Binds:       []string{"F"},
			Action:      string(ActionFitWidth),
		},
		"fit_page": {
			DisplayName: "Fit to Page",
			Binds:       []string{"Shift+F"},
			Action:      string(ActionFitPage),
		},
		"rotate_clockwise": {
			DisplayName: "Rotate Clockwise",
			Binds:       []string{"CmdOrCtrl+R"},
			Action:      string(ActionRotateClockwise),
		},
		"rotate_counterclockwise": {
			DisplayName: "Rotate Counterclockwise",
			Binds:       []string{"CmdOrCtrl+Shift+R"},
			Action:      string(ActionRotateCounterclockwise),
		},
		"toggle_view_mode": {
			DisplayName: "Toggle Continuous Mode",
			Binds:       []string{"C"},
			Action:      string(ActionToggleViewMode),
		},
		"toggle_fullscreen": {
			DisplayName: "Toggle Fullscreen",
			Binds:       []string{"F11"},
			Action:      string(ActionToggleFullscreen),
		},
		"preset_default": {
			DisplayName: "Night Preset",
			Binds:       []string{"Alt+1"},
			Action:      string(ActionApplyPreset),
			Payload:     "default",
		},
		"preset_original": {
			DisplayName: "Original Preset",
			Binds:       []string{"Alt+2"},
			Action:      string(ActionApplyPreset),
			Payload:     "original",
		},
		"preset_redeye": {
			DisplayName: "Red Eye Preset",
			Binds:       []string{"Alt+3"},
			Action:      string(ActionApplyPreset),
			Payload:     "redeye",
		},
		"preset_sepia": {
			DisplayName: "Sepia Preset",
			Binds:       []string{"Alt+4"},
			Action:      string(ActionApplyPreset),
			Payload:     "sepia",
		},
		"print": {
			DisplayName: "Print",
			Binds:       []string{"CmdOrCtrl+P"},
			Action:      string(ActionPrint),
		},
		"copy_path": {
			DisplayName: "Copy File Path",
			Binds:       []string{"CmdOrCtrl+Shift+C"},
			Action:      string(ActionCopyPath),
		},
		"export_page": {
			DisplayName: "Export Page",
			Binds:       []string{"CmdOrCtrl+E"},
			Action:      string(ActionExportPage),
		},
		"open_settings": {
			DisplayName: "Open Settings",
			Binds:       []string{"Alt+S"},
			Action:      string(ActionOpenSettings),
		},
		"open_help": {
			DisplayName: "Keyboard Shortcuts",
			Binds:       []string{"F1", "?"},
			Action:      string(ActionOpenHelp),
		},
		"quit": {
			DisplayName: "Quit",
			Binds:       []string{"CmdOrCtrl+Q"},
			Action:      string(ActionQuit),
		},
	}
}
