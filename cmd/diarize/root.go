package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/diarize/bootstrap"
	"github.com/kbukum/diarize/config"
	"github.com/kbukum/diarize/diarization"
	"github.com/kbukum/diarize/errors"
	"github.com/kbukum/diarize/logger"
	"github.com/kbukum/diarize/observability"
	"github.com/kbukum/diarize/provider"
	"github.com/kbukum/diarize/runner"
	"github.com/kbukum/diarize/version"
)

const usage = "Usage: diarize <audio_file> [output_file]"

var errUsage = stderrors.New(usage)

// cli carries the streams and injectable collaborators of one invocation.
type cli struct {
	stdout   io.Writer
	stderr   io.Writer
	registry *provider.Registry[diarization.Provider]

	configFile string
	envFile    string
	verbose    bool
}

func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diarize <audio_file> [output_file]",
		Short: "Identify who spoke when in an audio file",
		Long: `diarize sends an audio file to a speaker diarization pipeline and prints one
line per speaker turn:

  [0.0s - 2.5s] SPEAKER_00

When output_file is given the lines are written there instead of stdout.
HF_TOKEN must hold a Hugging Face token with access to the pipeline model.
Other settings come from a config file or DIARIZE_* environment variables.`,
		Version:       version.GetVersionInfo().String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}
	cmd.SetVersionTemplate("diarize {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&c.configFile, "config", "", "config file (default: searched in ./, ./config/, ~/.config/diarize/)")
	f.StringVar(&c.envFile, "env-file", "", ".env file to load before reading the environment")
	f.BoolVar(&c.verbose, "verbose", false, "log pipeline activity to stderr")
	f.String("backend", "", "diarization backend (default "+runner.DefaultBackend+")")
	f.String("base-url", "", "pipeline server URL")
	f.String("model", "", "pretrained pipeline to load")
	f.Int("num-speakers", 0, "exact number of speakers")
	f.Int("min-speakers", 0, "minimum number of speakers")
	f.Int("max-speakers", 0, "maximum number of speakers")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	audioPath := args[0]
	var outputPath string
	if len(args) > 1 {
		outputPath = args[1]
	}

	if _, err := os.Stat(audioPath); err != nil {
		if os.IsNotExist(err) {
			return errors.FileNotFound("Audio file", audioPath)
		}
		return errors.IOError("read", audioPath, err)
	}

	cfg, err := c.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	cfg.ApplyDefaults()
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, c.stderr)
	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log))
	if err != nil {
		return err
	}

	var shutdown observability.ShutdownFunc
	app.OnStart(func(ctx context.Context) error {
		sd, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
		if err != nil {
			return errors.InvalidConfig("observability", err.Error())
		}
		shutdown = sd
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		if shutdown == nil {
			return nil
		}
		return shutdown(ctx)
	})

	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		opts, err := c.runnerOptions(cfg, log)
		if err != nil {
			return err
		}
		start := time.Now()
		text, err := runner.New(opts...).Diarize(ctx, audioPath, outputPath)
		if err != nil {
			app.Summary.Track("diarize", observability.StatusError, errors.Message(err), time.Since(start))
			return err
		}
		app.Summary.Track("diarize", observability.StatusOK, outputPath, time.Since(start))
		if outputPath == "" {
			_, err = fmt.Fprintln(c.stdout, text)
		}
		return err
	})
}

// loadConfig reads files and environment, then applies changed flags.
func (c *cli) loadConfig(flags *pflag.FlagSet) (*AppConfig, error) {
	cfg := &AppConfig{}
	opts := []config.LoaderOption{
		config.WithConfigFile(c.configFile),
		config.WithEnvFile(c.envFile),
		config.WithEnvBinding("hf_token", runner.CredentialEnv),
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}

	if flags.Changed("backend") {
		cfg.Pipeline.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("base-url") {
		cfg.Pipeline.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("model") {
		cfg.Pipeline.Model, _ = flags.GetString("model")
	}
	if flags.Changed("num-speakers") {
		cfg.Pipeline.NumSpeakers, _ = flags.GetInt("num-speakers")
	}
	if flags.Changed("min-speakers") {
		cfg.Pipeline.MinSpeakers, _ = flags.GetInt("min-speakers")
	}
	if flags.Changed("max-speakers") {
		cfg.Pipeline.MaxSpeakers, _ = flags.GetInt("max-speakers")
	}
	if c.verbose {
		cfg.Debug = true
	}
	return cfg, nil
}

func (c *cli) runnerOptions(cfg *AppConfig, log *logger.Logger) ([]runner.Option, error) {
	opts := []runner.Option{
		runner.WithCredential(cfg.HFToken),
		runner.WithBackend(cfg.Pipeline.Backend, cfg.Pipeline.backendConfig()),
		runner.WithLogger(log),
		runner.WithServiceName(cfg.Name),
		runner.WithRequestDefaults(diarization.Request{
			NumSpeakers: cfg.Pipeline.NumSpeakers,
			MinSpeakers: cfg.Pipeline.MinSpeakers,
			MaxSpeakers: cfg.Pipeline.MaxSpeakers,
		}),
	}
	if c.registry != nil {
		opts = append(opts, runner.WithRegistry(c.registry))
	}
	if cfg.Observability.Metrics.Enabled {
		m, err := observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, errors.Internal(err)
		}
		opts = append(opts, runner.WithMetrics(m))
	}
	return opts, nil
}

// execute runs the command and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, reg *provider.Registry[diarization.Provider]) int {
	c := &cli{stdout: stdout, stderr: stderr, registry: reg}
	cmd := newRootCommand(c)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if stderrors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %s\n", errors.Message(err))
		return 1
	}
	return 0
}
