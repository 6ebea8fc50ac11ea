package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	inframcp "github.com/felixgeelhaar/tasker/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Tasker MCP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the stdio protocol, so logs always go to stderr.
		services, err := loadServices(newLogger(os.Stderr))
		if err != nil {
			return err
		}
		server, err := inframcp.NewServer(services)
		if err != nil {
			return err
		}
		if os.Getenv("TASKER_SKIP_MCP_START") == "true" {
			return nil
		}

		ctx := cmd.Context()
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			err = server.ServeStdio(ctx)
		case "http":
			err = server.ServeHTTP(ctx, mcpAddr)
		case "ws", "websocket":
			err = server.ServeWebSocket(ctx, mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http, ws)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for http/ws transports")
	RootCmd.AddCommand(mcpCmd)
}
