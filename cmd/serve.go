package cmd

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/server"
	"github.com/i3keep/i3keep/internal/wm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing i3keep tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes layout
operations as tools, so agents can save and restore window layouts without
shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  i3keep serve
  i3keep serve --transport streamable-http --port 8931
  i3keep serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8931, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Snapshot cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	scfg := serveConfig(cmd)

	client, err := wm.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	srv := server.New(client, scfg)
	log.Info("starting MCP server", "transport", scfg.Transport)
	return srv.Serve(scfg)
}

// serveConfig resolves the server configuration: flags win over the [mcp]
// config section, which wins over the built-in defaults.
func serveConfig(cmd *cobra.Command) server.Config {
	scfg := server.Config{
		Transport:   cfg.MCP.Transport,
		Port:        cfg.MCP.Port,
		CacheTTL:    cfg.MCP.CacheTTL(),
		SwallowKeys: cfg.Save.SwallowCriteria,
	}
	if cmd.Flags().Changed("transport") {
		scfg.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		scfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("cache-ttl") {
		ms, _ := cmd.Flags().GetInt("cache-ttl")
		scfg.CacheTTL = time.Duration(ms) * time.Millisecond
	}
	return scfg
}
