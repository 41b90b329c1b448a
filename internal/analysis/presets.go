package analysis

// Preset is a named preference profile: a fixed pair of axis weights that
// describes a typical buyer.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Axis1       float64 `json:"axis1"`
	Axis2       float64 `json:"axis2"`
}

// Presets returns the built-in preference profiles.
func Presets() []Preset {
	return []Preset{
		{Name: "programmer", Description: "favors CPU and RAM", Axis1: 0.8, Axis2: 0.4},
		{Name: "gamer", Description: "favors GPU", Axis1: -0.9, Axis2: -0.2},
		{Name: "video_editor", Description: "favors RAM and storage", Axis1: 0.2, Axis2: 0.9},
		{Name: "general", Description: "balanced", Axis1: 0, Axis2: 0},
		{Name: "data_science", Description: "CPU, RAM and GPU balance", Axis1: 0.5, Axis2: 0.7},
	}
}

// PresetByName looks up a built-in profile.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
