package filter

// Preset names. "default" is the dark reading theme applied to new tabs
// unless settings say otherwise; "original" leaves the page untouched.
const (
	PresetDefault  = "default"
	PresetOriginal = "original"
	PresetRedeye   = "redeye"
	PresetSepia    = "sepia"
)

var presets = map[string]Settings{
	PresetDefault: {
		Brightness:      20,
		Invert:          90,
		Sepia:           10,
		Hue:             180,
		ExtraBrightness: 0,
	},
	PresetOriginal: {},
	PresetRedeye: {
		Brightness:      10,
		Invert:          100,
		Sepia:           40,
		Hue:             130,
		ExtraBrightness: -10,
	},
	PresetSepia: {
		Grayscale:       10,
		Sepia:           80,
		ExtraBrightness: -5,
	},
}

// presetOrder fixes the display order in pickers and help output
var presetOrder = []string{PresetDefault, PresetOriginal, PresetRedeye, PresetSepia}

// Preset looks up a named preset
func Preset(name string) (Settings, bool) {
	s, ok := presets[name]
	return s, ok
}

// Names returns the preset names in display order
func Names() []string {
	out := make([]string, len(presetOrder))
	copy(out, presetOrder)
	return out
}

// Default returns the dark reading theme
func Default() Settings {
	return presets[PresetDefault]
}
