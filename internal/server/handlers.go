package server

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/i3keep/i3keep/internal/layout"
	"github.com/i3keep/i3keep/internal/model"
	"github.com/i3keep/i3keep/internal/wm"
)

// toYAML serializes v for an MCP text response.
func toYAML(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml encode: %w", err)
	}
	return string(b), nil
}

func (s *Server) handleSaveLayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	workspace := stringParam(params, "workspace", "")
	output := stringParam(params, "output", "")

	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	if workspace == "" && output == "" {
		focused, err := s.focusedWorkspace()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		workspace = focused
	}

	tree, err := s.cache.Tree(s.source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subtree, _, err := model.Select(tree, workspace, output)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc := layout.Render(model.Normalize(*subtree), layout.Options{SwallowKeys: s.swallowKeys})
	return mcp.NewToolResultText(doc), nil
}

func (s *Server) handleRestoreLayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	workspace := stringParam(params, "workspace", "")
	activate := boolParam(params, "activate_swallows", false)

	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	layoutPath := path
	if activate {
		data, err := os.ReadFile(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tmp, err := os.CreateTemp("", "i3keep-*.json")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(layout.ActivateSwallows(string(data))); err != nil {
			tmp.Close()
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := tmp.Close(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		layoutPath = tmp.Name()
	} else if _, err := os.Stat(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.source.RunCommand(wm.AppendLayoutCommand(workspace, layoutPath))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := wm.CommandError(results); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.cache.Invalidate()
	return mcp.NewToolResultText(fmt.Sprintf("layout %s appended", path)), nil
}

func (s *Server) handleDumpTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	workspace := stringParam(params, "workspace", "")
	output := stringParam(params, "output", "")

	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	tree, err := s.cache.Tree(s.source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subtree, _, err := model.Select(tree, workspace, output)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := toYAML(subtree)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	workspaces, err := s.source.GetWorkspaces()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := toYAML(workspaces)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleListOutputs(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	outputs, err := s.source.GetOutputs()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := toYAML(outputs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()

	v, err := s.source.GetVersion()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := toYAML(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// focusedWorkspace names the workspace that currently has focus.
func (s *Server) focusedWorkspace() (string, error) {
	workspaces, err := s.source.GetWorkspaces()
	if err != nil {
		return "", err
	}
	for _, ws := range workspaces {
		if ws.Focused {
			return ws.Name, nil
		}
	}
	return "", fmt.Errorf("window manager reports no focused workspace")
}
