package config

// KeyMappings defines the configurable board key bindings
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task"`
	DeleteTask    string `yaml:"delete_task"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	MoveTaskUp    string `yaml:"move_task_up"`
	MoveTaskDown  string `yaml:"move_task_down"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Other
	Refresh    string `yaml:"refresh"`
	CancelDrag string `yaml:"cancel_drag"`
	Quit       string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:       "a",
		DeleteTask:    "d",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		MoveTaskUp:    "K",
		MoveTaskDown:  "J",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		Refresh:    "r",
		CancelDrag: "esc",
		Quit:       "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.AddTask, defaults.AddTask)
	fill(&k.DeleteTask, defaults.DeleteTask)
	fill(&k.MoveTaskLeft, defaults.MoveTaskLeft)
	fill(&k.MoveTaskRight, defaults.MoveTaskRight)
	fill(&k.MoveTaskUp, defaults.MoveTaskUp)
	fill(&k.MoveTaskDown, defaults.MoveTaskDown)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.Quit, defaults.Quit)
}
