package commands

import (
	"flag"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/cli/flags"
	"github.com/codescribe-ai/codescribe/internal/config"
	"github.com/codescribe-ai/codescribe/internal/logger"
	"github.com/codescribe-ai/codescribe/internal/server"
)

func init() {
	Register(&Command{
		Name:        "serve",
		Description: "Start the HTTP documentation API",
		Run:         RunServe,
	})
}

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Host       string
	Port       int
	ConfigPath string
}

// RunServe executes the serve command with parsed arguments.
func RunServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := flags.AddConfigFlag(fs)
	host := flags.AddHostFlag(fs, "")
	port := flags.AddPortFlag(fs, 0)
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *debug:
		logger.SetLevel(logger.LevelDebug)
	case *verbose:
		logger.SetLevel(logger.LevelInfo)
	default:
		logger.SetLevel(logger.LevelInfo)
	}

	return ExecuteServe(ServeOptions{
		Host:       *host,
		Port:       *port,
		ConfigPath: *configPath,
	})
}

// ExecuteServe starts the API server with the given options. Zero values
// fall back to the api section of the configuration.
func ExecuteServe(opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	host := opts.Host
	if host == "" {
		host = cfg.API.Host
	}
	port := opts.Port
	if port == 0 {
		port = cfg.API.Port
	}

	srv := server.New(server.Config{
		Config:         cfg,
		Registry:       analysis.NewRegistry(),
		Version:        buildVersion,
		Host:           host,
		Port:           port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	})
	return srv.Start()
}
