// Command ignite-server binds a TCP listener and serves the wire
// protocol (spec §6.2, §6.3) against a chosen engine backend, guarding
// against reopening a data directory with a different engine than it
// was created with.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/internal/server"
	"github.com/ignitedb/ignite/pkg/filesys"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const metaFileName = "meta"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr, engineName, dataDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "ignite-server",
		Short: "Serve the ignite key/value store over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), addr, options.EngineName(engineName), dataDir, workers)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:4000", "IP:port to listen on")
	cmd.Flags().StringVar(&engineName, "engine", string(options.DefaultEngine), "engine backend: kvs or bolt")
	cmd.Flags().StringVar(&dataDir, "data-dir", options.DefaultDataDir, "directory the engine persists data under")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of worker pool goroutines")

	return cmd
}

func run(ctx context.Context, addr string, engineName options.EngineName, dataDir string, workers int) error {
	log := logger.New("ignite-server")

	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		log.Errorw("failed to create data directory", "dataDir", dataDir, "error", err)
		return err
	}

	if err := guardEngineMeta(dataDir, engineName); err != nil {
		log.Errorw("engine meta-file guard failed", "dataDir", dataDir, "engine", engineName, "error", err)
		return err
	}

	opts := options.NewDefaultOptions()
	options.WithDataDir(dataDir)(&opts)
	options.WithEngine(engineName)(&opts)

	registry := prometheus.NewRegistry()

	eng, err := engine.Open(ctx, &engine.Config{Options: &opts, Logger: log, Registerer: registry})
	if err != nil {
		log.Errorw("failed to open engine", "error", err)
		return err
	}

	srv := server.New(&server.Config{
		Addr: addr, Engine: eng, Workers: workers, Logger: log, Registerer: registry,
	})

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(runCtx) }()

	<-runCtx.Done()
	srv.Close()
	eng.Close()

	return <-errCh
}

// guardEngineMeta persists engineName to <dataDir>/meta on first run,
// and refuses to continue if a prior run used a different engine
// (spec §6.3, resolving §9's open question by anchoring meta inside the
// engine's own data directory rather than the process cwd).
func guardEngineMeta(dataDir string, engineName options.EngineName) error {
	metaPath := filepath.Join(dataDir, metaFileName)

	exists, err := filesys.Exists(metaPath)
	if err != nil {
		return err
	}

	if !exists {
		return filesys.WriteFile(metaPath, 0644, []byte(engineName))
	}

	contents, err := filesys.ReadFile(metaPath)
	if err != nil {
		return err
	}

	previous := strings.TrimSpace(string(contents))
	if previous == "" {
		return filesys.WriteFile(metaPath, 0644, []byte(engineName))
	}
	if previous != string(engineName) {
		return fmt.Errorf("data directory %s was created with engine %q, cannot reopen with engine %q", dataDir, previous, engineName)
	}

	return nil
}
