package niri

import "sort"

// Snapshot captures the compositor's output and workspace state at a single
// point in time. Nothing is cached across invocations; callers take a fresh
// snapshot every run.
type Snapshot struct {
	Outputs    map[string]Output
	Workspaces []Workspace
}

// TakeSnapshot queries the compositor once for outputs and workspaces.
func TakeSnapshot(c *Client) (*Snapshot, error) {
	outputs, err := c.Outputs()
	if err != nil {
		return nil, err
	}
	workspaces, err := c.Workspaces()
	if err != nil {
		return nil, err
	}
	return &Snapshot{Outputs: outputs, Workspaces: workspaces}, nil
}

// FocusedWorkspace returns the workspace holding keyboard focus, or nil.
func (s *Snapshot) FocusedWorkspace() *Workspace {
	for i := range s.Workspaces {
		if s.Workspaces[i].IsFocused {
			return &s.Workspaces[i]
		}
	}
	return nil
}

// FocusedOutput resolves the output of the focused workspace, or nil when
// nothing is focused or the workspace names an unknown output.
func (s *Snapshot) FocusedOutput() *Output {
	focused := s.FocusedWorkspace()
	if focused == nil || focused.Output == "" {
		return nil
	}
	if out, ok := s.Outputs[focused.Output]; ok {
		return &out
	}
	return nil
}

// Output looks up a connected output by connector name.
func (s *Snapshot) Output(name string) (*Output, bool) {
	if out, ok := s.Outputs[name]; ok {
		return &out, true
	}
	return nil, false
}

// Names returns the connector names of all outputs in stable order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Outputs))
	for name := range s.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
