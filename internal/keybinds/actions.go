package keybinds

// Action represents a user action that can be triggered by a keybinding.
// The set is fixed at compile time; the settings file rebinds chords to
// these actions but cannot introduce new ones.
type Action string

const (
	// File actions
	ActionOpenFile    Action = "open_file"    // Open file picker
	ActionOpenRecents Action = "open_recents" // Open recent files list
	ActionPrint       Action = "print"        // Print current document
	ActionCopyPath    Action = "copy_path"    // Copy document path to clipboard
	ActionExportPage  Action = "export_page"  // Export current page as image

	// Tab actions
	ActionCloseTab    Action = "close_tab"         // Close active tab
	ActionNextTab     Action = "next_tab"          // Switch to next tab
	ActionPreviousTab Action = "previous_tab"      // Switch to previous tab
	ActionSwitchTab   Action = "switch_tab"        // Switch to tab by position (payload 1-9)
	ActionReopenTab   Action = "reopen_closed_tab" // Reopen last closed tab

	// Page navigation actions
	ActionNextPage     Action = "next_page"     // Go to next page
	ActionPreviousPage Action = "previous_page" // Go to previous page
	ActionFirstPage    Action = "first_page"    // Go to first page
	ActionLastPage     Action = "last_page"     // Go to last page
	ActionGotoPage     Action = "goto_page"     // Open page number input
	ActionScrollUp     Action = "scroll_up"     // Scroll viewport up
	ActionScrollDown   Action = "scroll_down"   // Scroll viewport down

	// View actions
	ActionZoomIn                 Action = "zoom_in"                 // Increase zoom one step
	ActionZoomOut                Action = "zoom_out"                // Decrease zoom one step
	ActionResetZoom              Action = "reset_zoom"              // Reset zoom to 100%
	ActionFitWidth               Action = "fit_width"               // Fit page to viewport width
	ActionFitPage                Action = "fit_page"                // Fit whole page in viewport
	ActionRotateClockwise        Action = "rotate_clockwise"        // Rotate view 90 degrees right
	ActionRotateCounterclockwise Action = "rotate_counterclockwise" // Rotate view 90 degrees left
	ActionToggleViewMode         Action = "toggle_view_mode"        // Toggle single/continuous mode
	ActionToggleFullscreen       Action = "toggle_fullscreen"       // Toggle fullscreen mode
	ActionApplyPreset            Action = "apply_preset"            // Apply filter preset (payload = name)

	// Application actions
	ActionOpenSettings Action = "open_settings" // Open settings
	ActionOpenHelp     Action = "open_help"     // Open keybind help
	ActionQuit         Action = "quit"          // Quit application
)

// allActions lists every known action in display order
var allActions = []Action{
	ActionOpenFile,
	ActionOpenRecents,
	ActionPrint,
	ActionCopyPath,
	ActionExportPage,
	ActionCloseTab,
	ActionNextTab,
	ActionPreviousTab,
	ActionSwitchTab,
	ActionReopenTab,
	ActionNextPage,
	ActionPreviousPage,
	ActionFirstPage,
	ActionLastPage,
	ActionGotoPage,
	ActionScrollUp,
	ActionScrollDown,
	ActionZoomIn,
	ActionZoomOut,
	ActionResetZoom,
	ActionFitWidth,
	ActionFitPage,
	ActionRotateClockwise,
	ActionRotateCounterclockwise,
	ActionToggleViewMode,
	ActionToggleFullscreen,
	ActionApplyPreset,
	ActionOpenSettings,
	ActionOpenHelp,
	ActionQuit,
}

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	infos := map[Action]ActionInfo{
		ActionOpenFile:               {ActionOpenFile, "Open file", "File"},
		ActionOpenRecents:            {ActionOpenRecents, "Open recent files", "File"},
		ActionPrint:                  {ActionPrint, "Print document", "File"},
		ActionCopyPath:               {ActionCopyPath, "Copy file path", "File"},
		ActionExportPage:             {ActionExportPage, "Export page as image", "File"},
		ActionCloseTab:               {ActionCloseTab, "Close tab", "Tabs"},
		ActionNextTab:                {ActionNextTab, "Next tab", "Tabs"},
		ActionPreviousTab:            {ActionPreviousTab, "Previous tab", "Tabs"},
		ActionSwitchTab:              {ActionSwitchTab, "Switch to tab", "Tabs"},
		ActionReopenTab:              {ActionReopenTab, "Reopen closed tab", "Tabs"},
		ActionNextPage:               {ActionNextPage, "Next page", "Navigation"},
		ActionPreviousPage:           {ActionPreviousPage, "Previous page", "Navigation"},
		ActionFirstPage:              {ActionFirstPage, "First page", "Navigation"},
		ActionLastPage:               {ActionLastPage, "Last page", "Navigation"},
		ActionGotoPage:               {ActionGotoPage, "Go to page", "Navigation"},
		ActionScrollUp:               {ActionScrollUp, "Scroll up", "Navigation"},
		ActionScrollDown:             {ActionScrollDown, "Scroll down", "Navigation"},
		ActionZoomIn:                 {ActionZoomIn, "Zoom in", "View"},
		ActionZoomOut:                {ActionZoomOut, "Zoom out", "View"},
		ActionResetZoom:              {ActionResetZoom, "Reset zoom", "View"},
		ActionFitWidth:               {ActionFitWidth, "Fit to width", "View"},
		ActionFitPage:                {ActionFitPage, "Fit to page", "View"},
		ActionRotateClockwise:        {ActionRotateClockwise, "Rotate clockwise", "View"},
		ActionRotateCounterclockwise: {ActionRotateCounterclockwise, "Rotate counterclockwise", "View"},
		ActionToggleViewMode:         {ActionToggleViewMode, "Toggle view mode", "View"},
		ActionToggleFullscreen:       {ActionToggleFullscreen, "Toggle fullscreen", "View"},
		ActionApplyPreset:            {ActionApplyPreset, "Apply filter preset", "View"},
		ActionOpenSettings:           {ActionOpenSettings, "Open settings", "Application"},
		ActionOpenHelp:               {ActionOpenHelp, "Open help", "Application"},
		ActionQuit:                   {ActionQuit, "Quit", "Application"},
	}

	if info, ok := infos[action]; ok {
		return info
	}

	return ActionInfo{action, string(action), "Unknown"}
}

// AllActions returns every known action in display order
func AllActions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

// IsKnownAction returns true if the action is part of the fixed action set
func IsKnownAction(action Action) bool {
	for _, a := range allActions {
		if a == action {
			return true
		}
	}
	return false
}
