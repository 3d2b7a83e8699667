// Package wm talks to a running i3 or sway instance over its IPC socket.
//
// The protocol is a simple framed request/reply exchange over a unix socket;
// see codec.go for the wire format. One Client holds one connection and
// serializes round trips on it, so it is safe to share.
package wm

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/model"
)

// Client is a connection to the window manager.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// Connect dials the socket advertised by the environment or by the window
// manager itself.
func Connect() (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return Dial(path)
}

// Dial connects to the IPC socket at path.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "connect to window manager at %s", path)
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip sends one request and reads its reply. The connection lock makes
// concurrent callers take turns; replies on the socket arrive in request
// order, and the reply type must echo the request type.
func (c *Client) roundTrip(msgType uint32, payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeMessage(c.conn, msgType, payload); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "send IPC request")
	}
	replyType, reply, err := readMessage(c.conn)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "read IPC reply")
	}
	if replyType != msgType {
		return nil, errdefs.New(errdefs.CodeConnectionFailure,
			"IPC reply type %d does not match request type %d", replyType, msgType)
	}
	return reply, nil
}

// GetTree returns the full layout tree.
func (c *Client) GetTree() (*model.Node, error) {
	reply, err := c.roundTrip(TypeGetTree, nil)
	if err != nil {
		return nil, err
	}
	var root model.Node
	if err := json.Unmarshal(reply, &root); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "decode layout tree")
	}
	return &root, nil
}

// GetWorkspaces returns the current workspaces.
func (c *Client) GetWorkspaces() ([]Workspace, error) {
	reply, err := c.roundTrip(TypeGetWorkspaces, nil)
	if err != nil {
		return nil, err
	}
	var workspaces []Workspace
	if err := json.Unmarshal(reply, &workspaces); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "decode workspaces")
	}
	return workspaces, nil
}

// GetOutputs returns the current outputs.
func (c *Client) GetOutputs() ([]Output, error) {
	reply, err := c.roundTrip(TypeGetOutputs, nil)
	if err != nil {
		return nil, err
	}
	var outputs []Output
	if err := json.Unmarshal(reply, &outputs); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "decode outputs")
	}
	return outputs, nil
}

// GetVersion returns the window manager's version information.
func (c *Client) GetVersion() (Version, error) {
	reply, err := c.roundTrip(TypeGetVersion, nil)
	if err != nil {
		return Version{}, err
	}
	var v Version
	if err := json.Unmarshal(reply, &v); err != nil {
		return Version{}, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "decode version")
	}
	return v, nil
}

// RunCommand executes an i3 command string and returns the per-command
// results. A single string may hold several commands separated by
// semicolons; each gets its own result.
func (c *Client) RunCommand(command string) ([]CommandResult, error) {
	reply, err := c.roundTrip(TypeRunCommand, []byte(command))
	if err != nil {
		return nil, err
	}
	var results []CommandResult
	if err := json.Unmarshal(reply, &results); err != nil {
		return nil, errdefs.Wrap(errdefs.CodeConnectionFailure, err, "decode command results")
	}
	return results, nil
}

// FocusedWorkspace returns the name of the workspace that currently has
// focus.
func (c *Client) FocusedWorkspace() (string, error) {
	workspaces, err := c.GetWorkspaces()
	if err != nil {
		return "", err
	}
	for _, ws := range workspaces {
		if ws.Focused {
			return ws.Name, nil
		}
	}
	return "", errdefs.New(errdefs.CodeConnectionFailure, "window manager reports no focused workspace")
}

// AppendLayoutCommand builds the command that loads the layout document at
// path as placeholder windows. An empty workspace targets whatever is
// focused; otherwise the workspace is switched to first.
func AppendLayoutCommand(workspace, path string) string {
	cmd := fmt.Sprintf("append_layout %s", quote(path))
	if workspace != "" {
		cmd = fmt.Sprintf("workspace %s; %s", quote(workspace), cmd)
	}
	return cmd
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// CommandError returns the first failure among command results, or nil when
// every command succeeded.
func CommandError(results []CommandResult) error {
	for _, r := range results {
		if r.Success {
			continue
		}
		if r.Error != "" {
			return errdefs.New(errdefs.CodeInvalidInput, "window manager rejected command: %s", r.Error)
		}
		return errdefs.New(errdefs.CodeInvalidInput, "window manager rejected command")
	}
	return nil
}
