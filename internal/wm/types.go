package wm

import "github.com/i3keep/i3keep/internal/model"

// Workspace is one entry of a GET_WORKSPACES reply.
type Workspace struct {
	Num     int        `yaml:"num"     json:"num"`
	Name    string     `yaml:"name"    json:"name"`
	Visible bool       `yaml:"visible" json:"visible"`
	Focused bool       `yaml:"focused" json:"focused"`
	Urgent  bool       `yaml:"urgent"  json:"urgent"`
	Rect    model.Rect `yaml:"rect"    json:"rect"`
	Output  string     `yaml:"output"  json:"output"`
}

// Output is one entry of a GET_OUTPUTS reply.
type Output struct {
	Name             string     `yaml:"name"                        json:"name"`
	Active           bool       `yaml:"active"                      json:"active"`
	Primary          bool       `yaml:"primary"                     json:"primary"`
	CurrentWorkspace string     `yaml:"current_workspace,omitempty" json:"current_workspace,omitempty"`
	Rect             model.Rect `yaml:"rect"                        json:"rect"`
}

// Version is the GET_VERSION reply.
type Version struct {
	Major                int    `yaml:"major"                    json:"major"`
	Minor                int    `yaml:"minor"                    json:"minor"`
	Patch                int    `yaml:"patch"                    json:"patch"`
	HumanReadable        string `yaml:"human_readable"           json:"human_readable"`
	LoadedConfigFileName string `yaml:"loaded_config_file_name,omitempty" json:"loaded_config_file_name,omitempty"`
}

// CommandResult is the per-command outcome of a RUN_COMMAND reply.
type CommandResult struct {
	Success bool   `yaml:"success"         json:"success"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
}
