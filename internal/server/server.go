// Package server exposes layout operations as MCP tools over stdio or
// streamable HTTP, so editor agents can save and restore window layouts.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/i3keep/i3keep/internal/model"
	"github.com/i3keep/i3keep/internal/version"
	"github.com/i3keep/i3keep/internal/wm"
)

// TreeSource is the window-manager surface the server needs. *wm.Client
// implements it; tests substitute a fake.
type TreeSource interface {
	GetTree() (*model.Node, error)
	GetWorkspaces() ([]wm.Workspace, error)
	GetOutputs() ([]wm.Output, error)
	GetVersion() (wm.Version, error)
	RunCommand(command string) ([]wm.CommandResult, error)
}

// Config holds MCP server configuration.
type Config struct {
	Transport   string
	Port        int
	CacheTTL    time.Duration
	SwallowKeys []string
}

// Server wraps the MCP server with the tree source and snapshot cache.
type Server struct {
	source      TreeSource
	cache       *SnapshotCache
	sourceMu    sync.Mutex
	swallowKeys []string
	mcp         *mcpserver.MCPServer
}

// New creates and configures an MCP server with all i3keep tools.
func New(source TreeSource, cfg Config) *Server {
	s := &Server{
		source:      source,
		cache:       NewSnapshotCache(cfg.CacheTTL),
		swallowKeys: cfg.SwallowKeys,
	}

	s.mcp = mcpserver.NewMCPServer(
		"i3keep",
		version.Version,
	)

	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// save_layout
	s.mcp.AddTool(
		mcp.NewTool("save_layout",
			mcp.WithDescription("Save the current window layout as a commented, human-editable document with swallow criteria. Saves the focused workspace unless a workspace or output is named."),
			mcp.WithString("workspace", mcp.Description("Save this workspace (name or number)")),
			mcp.WithString("output", mcp.Description("Save every workspace on this output")),
		),
		s.handleSaveLayout,
	)

	// restore_layout
	s.mcp.AddTool(
		mcp.NewTool("restore_layout",
			mcp.WithDescription("Append a saved layout file so its placeholder windows swallow matching windows as they launch."),
			mcp.WithString("path", mcp.Description("Path to a saved layout file"), mcp.Required()),
			mcp.WithString("workspace", mcp.Description("Restore onto this workspace instead of the focused one")),
			mcp.WithBoolean("activate_swallows", mcp.Description("Uncomment the advisory swallow criteria before appending")),
		),
		s.handleRestoreLayout,
	)

	// dump_tree
	s.mcp.AddTool(
		mcp.NewTool("dump_tree",
			mcp.WithDescription("Dump the raw layout tree, or the subtree of one workspace or output, as YAML."),
			mcp.WithString("workspace", mcp.Description("Limit to this workspace (name or number)")),
			mcp.WithString("output", mcp.Description("Limit to this output")),
		),
		s.handleDumpTree,
	)

	// list_workspaces
	s.mcp.AddTool(
		mcp.NewTool("list_workspaces",
			mcp.WithDescription("List workspaces with focus, visibility and output placement"),
		),
		s.handleListWorkspaces,
	)

	// list_outputs
	s.mcp.AddTool(
		mcp.NewTool("list_outputs",
			mcp.WithDescription("List outputs with geometry and the workspace they show"),
		),
		s.handleListOutputs,
	)

	// wm_version
	s.mcp.AddTool(
		mcp.NewTool("wm_version",
			mcp.WithDescription("Report the window manager version"),
		),
		s.handleVersion,
	)
}
