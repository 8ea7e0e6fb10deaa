package testsupport

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"niriscale/internal/niri"
)

// ScaleChange records one set-scale command the fake compositor received.
type ScaleChange struct {
	Output string
	Scale  float64
}

// Compositor is an in-process stand-in for the niri IPC socket. It answers
// the line-oriented JSON protocol with canned output and workspace state
// and records every scale change it is asked to apply.
type Compositor struct {
	t        testing.TB
	listener net.Listener
	path     string

	mu       sync.Mutex
	outputs  map[string]niri.Output
	focused  string
	applied  []ScaleChange
	errReply string
}

// StartCompositor listens on a fresh socket and serves until test cleanup.
// The focused name selects which output the focused workspace reports;
// pass "" for no focused workspace.
func StartCompositor(t testing.TB, outputs map[string]niri.Output, focused string) *Compositor {
	t.Helper()

	path := filepath.Join(t.TempDir(), "niri.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen on fake compositor socket: %v", err)
	}
	c := &Compositor{t: t, listener: listener, path: path, outputs: outputs, focused: focused}
	go c.serve()
	t.Cleanup(func() {
		listener.Close()
	})
	return c
}

// SocketPath returns the socket the fake compositor listens on.
func (c *Compositor) SocketPath() string {
	return c.path
}

// Applied returns a copy of every scale change received so far.
func (c *Compositor) Applied() []ScaleChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ScaleChange, len(c.applied))
	copy(out, c.applied)
	return out
}

// FailWith makes every subsequent request answer with an Err reply.
func (c *Compositor) FailWith(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errReply = message
}

// Output builds a connected test output with the given scale.
func Output(name string, scale float64) niri.Output {
	return niri.Output{
		Name:  name,
		Make:  "Test",
		Model: name,
		Logical: &niri.Logical{
			Width:     1920,
			Height:    1080,
			Scale:     scale,
			Transform: "normal",
		},
	}
}

func (c *Compositor) serve() {
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			return
		}
		go c.handle(conn)
	}
}

func (c *Compositor) handle(conn net.Conn) {
	defer conn.Close()
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return
	}
	var request any
	if err := json.Unmarshal(line, &request); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.errReply != "" {
		c.write(conn, map[string]any{"Err": c.errReply})
		return
	}

	switch req := request.(type) {
	case string:
		switch req {
		case "Outputs":
			c.write(conn, map[string]any{"Ok": map[string]any{"Outputs": c.outputs}})
		case "Workspaces":
			c.write(conn, map[string]any{"Ok": map[string]any{"Workspaces": c.workspacesLocked()}})
		default:
			c.write(conn, map[string]any{"Err": "unknown request"})
		}
	case map[string]any:
		name, scale, ok := decodeSetScale(req)
		if !ok {
			c.write(conn, map[string]any{"Err": "malformed action"})
			return
		}
		c.applied = append(c.applied, ScaleChange{Output: name, Scale: scale})
		if out, found := c.outputs[name]; found && out.Logical != nil {
			logical := *out.Logical
			logical.Scale = scale
			out.Logical = &logical
			c.outputs[name] = out
		}
		c.write(conn, map[string]any{"Ok": map[string]any{"Handled": nil}})
	default:
		c.write(conn, map[string]any{"Err": "unknown request"})
	}
}

func (c *Compositor) workspacesLocked() []niri.Workspace {
	workspaces := make([]niri.Workspace, 0, len(c.outputs))
	id := uint64(1)
	for name := range c.outputs {
		workspaces = append(workspaces, niri.Workspace{
			ID:        id,
			Idx:       1,
			Output:    name,
			IsActive:  true,
			IsFocused: name == c.focused,
		})
		id++
	}
	return workspaces
}

func decodeSetScale(req map[string]any) (string, float64, bool) {
	action, _ := req["Action"].(map[string]any)
	outputAction, _ := action["Output"].(map[string]any)
	name, _ := outputAction["output"].(string)
	body, _ := outputAction["action"].(map[string]any)
	setScale, _ := body["SetScale"].(map[string]any)
	scale, _ := setScale["scale"].(float64)
	if name == "" || scale <= 0 {
		return "", 0, false
	}
	return name, scale, true
}

func (c *Compositor) write(conn net.Conn, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.t.Errorf("marshal fake compositor reply: %v", err)
		return
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		c.t.Logf("write fake compositor reply: %v", err)
	}
}
