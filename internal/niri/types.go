package niri

// Output describes a connected display as reported by the compositor.
type Output struct {
	Name         string   `json:"name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Serial       string   `json:"serial"`
	PhysicalSize *[2]int  `json:"physical_size"`
	Modes        []Mode   `json:"modes"`
	CurrentMode  *int     `json:"current_mode"`
	VRRSupported bool     `json:"vrr_supported"`
	VRREnabled   bool     `json:"vrr_enabled"`
	Logical      *Logical `json:"logical"`
}

// Scale returns the output's active scale factor, or 0 when the output is
// disabled (no logical representation).
func (o Output) Scale() float64 {
	if o.Logical == nil {
		return 0
	}
	return o.Logical.Scale
}

// Mode is a display mode advertised by an output.
type Mode struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RefreshRate uint32 `json:"refresh_rate"`
	IsPreferred bool   `json:"is_preferred"`
}

// Logical is the logical-space placement of an enabled output.
type Logical struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Scale     float64 `json:"scale"`
	Transform string  `json:"transform"`
}

// Workspace is a compositor workspace; the focused one identifies the
// output the user is currently looking at.
type Workspace struct {
	ID             uint64  `json:"id"`
	Idx            int     `json:"idx"`
	Name           *string `json:"name"`
	Output         string  `json:"output"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}
