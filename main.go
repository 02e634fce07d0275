// Command rovers drives squads of rovers across a rectangular plateau.
//
// It supports four commands:
//  1. "run" reads a mission file, simulates it and writes the final rover states
//  2. "validate" checks mission files without running them
//  3. "serve" runs the HTTP server exposing the REST API, a WebSocket stream and an /mcp endpoint
//  4. "mcp" runs an MCP stdio server over the mission catalog
//
// Settings are read from rovers.toml when present and can be overridden with
// flags or ROVERS_* environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/rover-mission/api"
	"github.com/wricardo/rover-mission/logging"
	"github.com/wricardo/rover-mission/mission/catalog"
	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/input"
	"github.com/wricardo/rover-mission/mission/render"
	"github.com/wricardo/rover-mission/mission/service"
	"github.com/wricardo/rover-mission/settings"
	"github.com/wricardo/rover-mission/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "rovers"
)

// app carries the state shared by every command once settings are loaded
type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	settings settings.Settings
	logger   zerolog.Logger
}

// main loads .env, builds the command tree and runs it.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	return &cli.Command{
		Name:      AppName,
		Usage:     "simulate rovers exploring a plateau",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "settings file (default rovers.toml when present)",
				Sources: cli.EnvVars("ROVERS_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn, error or off",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "console or json",
				Sources: cli.EnvVars("ROVERS_LOG_FORMAT"),
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			runCommand(a),
			validateCommand(a),
			serveCommand(a),
			mcpCommand(a),
		},
	}
}

// setup layers settings and builds the logger before any command runs
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := settings.Load(cmd.String("config"))
	if err != nil {
		return ctx, cli.Exit(err.Error(), 2)
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}

	logger, err := logging.New(AppName, logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    a.stderr,
	})
	if err != nil {
		return ctx, cli.Exit(err.Error(), 2)
	}

	a.settings = cfg
	a.logger = logger
	return ctx, nil
}

func runCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "simulate a mission file and write the final rover states",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "mission file, or - for stdin (default data/input.txt)",
				Sources: cli.EnvVars("ROVERS_INPUT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, or - for stdout (default data/output.txt)",
				Sources: cli.EnvVars("ROVERS_OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "policy",
				Usage:   "what to do when a rover fails: abort or halt",
				Sources: cli.EnvVars("ROVERS_POLICY"),
			},
			&cli.BoolFlag{
				Name:    "grid",
				Usage:   "draw the plateau after the run",
				Sources: cli.EnvVars("ROVERS_GRID"),
			},
		},
		Action: a.run,
	}
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	cfg := a.settings.Run
	if cmd.IsSet("input") {
		cfg.Input = cmd.String("input")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("policy") {
		cfg.Policy = cmd.String("policy")
	}
	if cmd.IsSet("grid") {
		cfg.Grid = cmd.Bool("grid")
	}

	policy, err := control.ParsePolicy(cfg.Policy)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	source, err := a.readSource(cfg.Input)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mission, format, err := input.ParseSource(source)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", cfg.Input, err), 1)
	}
	a.logger.Info().Str("input", cfg.Input).Str("format", format).Int("rovers", len(mission.Rovers)).Msg("mission loaded")

	report, err := control.Run(mission, control.WithPolicy(policy), control.WithLogger(a.logger))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := a.writeReport(cfg.Output, report); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, line := range report.FailureLines() {
		fmt.Fprintln(a.stderr, line)
	}
	fmt.Fprintln(a.stdout, report.Summary())
	if cfg.Grid {
		fmt.Fprintln(a.stdout, render.Grid(report))
	}

	a.logger.Info().Str("output", cfg.Output).Int("failures", len(report.Failures)).Msg("mission complete")
	return nil
}

func (a *app) readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mission: %w", err)
	}
	return string(data), nil
}

func (a *app) writeReport(path string, report *control.Report) error {
	if path == "-" {
		_, err := report.WriteTo(a.stdout)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := report.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

func validateCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check mission files without running them",
		ArgsUsage: "FILE...",
		Action:    a.validate,
	}
}

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("validate: at least one mission file is required", 2)
	}

	missionService := service.NewMissionService(nil, a.logger)
	invalid := 0
	for _, path := range files {
		source, err := a.readSource(path)
		if err != nil {
			fmt.Fprintf(a.stdout, "%s: %v\n", path, err)
			invalid++
			continue
		}

		result, err := missionService.Validate(ctx, source)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if !result.Valid {
			fmt.Fprintf(a.stdout, "%s: INVALID (%s): %s\n", path, result.Format, result.Error)
			invalid++
			continue
		}
		fmt.Fprintf(a.stdout, "%s: VALID (%s): %dx%d plateau, %d rovers, %d instructions\n",
			path, result.Format, result.Plateau.Width, result.Plateau.Height,
			result.RoverCount, result.InstructionCount)
	}

	if invalid > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d mission files are invalid", invalid, len(files)), 1)
	}
	return nil
}

func missionsDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "missions-dir",
		Usage:   "directory containing mission files (default data/missions)",
		Sources: cli.EnvVars("ROVERS_MISSIONS_DIR"),
	}
}

func (a *app) missionsDir(cmd *cli.Command) string {
	if cmd.IsSet("missions-dir") {
		return cmd.String("missions-dir")
	}
	return a.settings.Server.MissionsDir
}

func serveCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with the REST API, WebSocket stream and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "HTTP server host (default localhost)",
				Sources: cli.EnvVars("ROVERS_HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP server port (default 8080)",
				Sources: cli.EnvVars("ROVERS_PORT"),
			},
			missionsDirFlag(),
		},
		Action: a.serve,
	}
}

func (a *app) serve(ctx context.Context, cmd *cli.Command) error {
	cfg := a.settings.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	cfg.MissionsDir = a.missionsDir(cmd)

	manager, err := catalog.NewManager(cfg.MissionsDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create mission catalog: %v", err), 1)
	}
	missionService := service.NewMissionService(manager, a.logger)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(missionService, a.logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", addr).
			Str("missions", cfg.MissionsDir).
			Msgf("REST API http://%s/api, WebSocket ws://%s/ws, MCP http://%s/mcp", addr, addr, addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return cli.Exit(fmt.Sprintf("HTTP server failed: %v", err), 1)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return cli.Exit(fmt.Sprintf("HTTP server shutdown error: %v", err), 1)
	}
	<-errCh
	a.logger.Info().Msg("server stopped")
	return nil
}

func mcpCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "run an MCP server on stdio",
		Flags:  []cli.Flag{missionsDirFlag()},
		Action: a.serveMCP,
	}
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	dir := a.missionsDir(cmd)

	// Without a catalog the ad-hoc tools still work
	var missions service.MissionCatalog
	manager, err := catalog.NewManager(dir)
	if err != nil {
		a.logger.Warn().Err(err).Msg("mission catalog unavailable")
	} else {
		missions = manager
	}

	mcpServer := mcp.NewServer(service.NewMissionService(missions, a.logger))
	a.logger.Info().Str("missions", dir).Msg("starting MCP stdio server")

	if err := server.ServeStdio(mcpServer.MCPServer()); err != nil {
		return cli.Exit(fmt.Sprintf("MCP server error: %v", err), 1)
	}
	return nil
}
