// Package shared holds the context passed to all CLI commands.
package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-ports/gomate/internal/config"
	"github.com/go-ports/gomate/internal/logging"
	"github.com/go-ports/gomate/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the GoMate home directory.
	// When empty, resolution falls through to GOMATE_HOME env var → persisted config → ~/.gomate.
	Home string
	// JSON switches command output to JSON.
	JSON bool
	// LogOutput receives log records; nil means stderr.
	LogOutput io.Writer
}

// ResolveHome returns the home directory and where it came from.
func (c *Context) ResolveHome() (home, source string) {
	if c.Home != "" {
		return c.Home, "flag"
	}
	return config.ResolveHome()
}

// Open applies the home's log level, then builds the service for it.
func (c *Context) Open(ctx context.Context) (*service.Service, error) {
	home, _ := c.ResolveHome()
	cfg, err := config.Load(filepath.Join(home, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logOut := c.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logging.SetupWriter(logOut, cfg.Log.Level)
	return service.New(ctx, home)
}

// Print writes v as indented JSON when --json is set, otherwise calls text.
func (c *Context) Print(w io.Writer, v any, text func(io.Writer)) error {
	if !c.JSON {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
