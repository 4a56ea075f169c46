package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/reportio/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio mcp\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio, exposing the\n")
		Writef(fs.Output(), "validate, upgrade, merge, dedup, compare, strip_metadata and versions tools.\n\n")
		Writef(fs.Output(), "Configuration is read from REPORTIO_* environment variables, for example\n")
		Writef(fs.Output(), "REPORTIO_TARGET, REPORTIO_DEDUP_SEED and REPORTIO_MAX_INLINE_SIZE.\n")
	}

	return fs
}

// HandleMCP executes the mcp command. It blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
