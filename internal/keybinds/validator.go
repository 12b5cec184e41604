package keybinds

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type        string // "conflict", "invalid", "warning"
	ID          string
	Accelerator string
	Message     string
}

func (e *ValidationError) Error() string {
	if e.Accelerator != "" {
		return fmt.Sprintf("[%s] %s in '%s': %s", e.Type, e.Accelerator, e.ID, e.Message)
	}
	return fmt.Sprintf("[%s] '%s': %s", e.Type, e.ID, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybind configurations. Findings are advisory: the
// registry accepts any config and resolves duplicates by match order, so
// nothing here ever blocks a load.
type Validator struct {
	mac bool
}

// NewValidator creates a new keybinding validator
func NewValidator(mac bool) *Validator {
	return &Validator{mac: mac}
}

// ValidateKeybinds validates a keybind entry map
func (v *Validator) ValidateKeybinds(entries map[string]Keybind) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkActions(entries, result)
	v.checkAccelerators(entries, result)
	v.checkDuplicateChords(entries, result)
	v.checkQuitReachable(entries, result)

	return result
}

// ValidateConfig validates a standalone keybind config file
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	return v.ValidateKeybinds(config.Keybinds)
}

// checkActions flags entries whose action is not part of the fixed action
// set, suggesting the closest known name for likely typos
func (v *Validator) checkActions(entries map[string]Keybind, result *ValidationResult) {
	for _, id := range orderedIDs(entries) {
		entry := entries[id]

		action := Action(entry.Action)
		if action == "" {
			action = Action(id)
		}
		if IsKnownAction(action) {
			continue
		}

		msg := fmt.Sprintf("unknown action %q", action)
		if suggestion, ok := closestAction(action); ok {
			msg = fmt.Sprintf("unknown action %q (did you mean %q?)", action, suggestion)
		}

		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			ID:      id,
			Message: msg,
		})
	}
}

// closestAction returns the known action with the smallest edit distance,
// if any is close enough to look like a typo
func closestAction(action Action) (Action, bool) {
	const maxDistance = 3

	best := Action("")
	bestDist := maxDistance + 1

	for _, known := range allActions {
		d := levenshtein.ComputeDistance(string(action), string(known))
		if d < bestDist {
			best = known
			bestDist = d
		}
	}

	return best, bestDist <= maxDistance
}

// checkAccelerators flags accelerator strings that parse to no key at all
func (v *Validator) checkAccelerators(entries map[string]Keybind, result *ValidationResult) {
	for _, id := range orderedIDs(entries) {
		for _, accel := range entries[id].Binds {
			chord := ParseAccelerator(accel, v.mac)
			if chord.IsModifierOnly() {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:        "warning",
					ID:          id,
					Accelerator: accel,
					Message:     "accelerator has no key and will never match",
				})
			}
		}
	}
}

// checkDuplicateChords flags chords claimed by more than one entry. The
// first entry in install order wins at runtime, so this is a warning.
func (v *Validator) checkDuplicateChords(entries map[string]Keybind, result *ValidationResult) {
	owner := make(map[Chord]string)

	for _, id := range orderedIDs(entries) {
		for _, accel := range entries[id].Binds {
			chord := ParseAccelerator(accel, v.mac)
			if chord.IsModifierOnly() {
				continue
			}

			if prev, taken := owner[chord]; taken {
				if prev == id {
					continue
				}
				result.Warnings = append(result.Warnings, ValidationError{
					Type:        "conflict",
					ID:          id,
					Accelerator: accel,
					Message:     fmt.Sprintf("also bound to '%s', which takes priority", prev),
				})
				continue
			}

			owner[chord] = id
		}
	}
}

// checkQuitReachable warns when no keyboard path out of the application
// remains bound
func (v *Validator) checkQuitReachable(entries map[string]Keybind, result *ValidationResult) {
	entry, ok := entries["quit"]
	if !ok {
		return
	}

	for _, accel := range entry.Binds {
		if !ParseAccelerator(accel, v.mac).IsModifierOnly() {
			return
		}
	}

	result.Warnings = append(result.Warnings, ValidationError{
		Type:    "warning",
		ID:      "quit",
		Message: "quit has no usable binding",
	})
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config, mac bool) []string {
	validator := NewValidator(mac)
	result := validator.ValidateConfig(config)

	var conflicts []string
	for _, warn := range result.Warnings {
		if warn.Type == "conflict" {
			conflicts = append(conflicts, warn.Error())
		}
	}

	return conflicts
}
