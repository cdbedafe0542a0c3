package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spellfix/internal/appdirs"
	"spellfix/internal/config"
	"spellfix/internal/diff"
	"spellfix/internal/engine"
	"spellfix/internal/envfile"
	"spellfix/internal/envutil"
	"spellfix/internal/languagetool"
	"spellfix/internal/logging"
)

type options struct {
	configPath string
	url        string
	language   string
	timeout    float64
	maxChunk   int
	local      bool
	showDiff   bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "spellfix [text...]",
		Short: "Fix misspellings in prose without mangling code-like tokens",
		Long: `spellfix shields URLs, emails, paths, CLI flags, and identifiers behind
placeholders, applies local spacing and capitalization fixes, and sends the
remaining prose to a LanguageTool-compatible service for misspelling
corrections. The corrected text is written to stdout; diagnostics go to
stderr.

Text is read from stdin when piped, otherwise from the positional arguments.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a config.yaml (default: the user config dir)")
	flags.StringVar(&opts.url, "url", "", "grammar service endpoint URL")
	flags.StringVar(&opts.language, "language", "", "language code sent to the grammar service")
	flags.Float64Var(&opts.timeout, "timeout", 0, "grammar service request timeout in seconds")
	flags.IntVar(&opts.maxChunk, "max-chunk", 0, "maximum characters sent to the service per request")
	flags.BoolVar(&opts.local, "local", false, "skip the grammar service, apply local fixes only")
	flags.BoolVar(&opts.showDiff, "diff", false, "print a diff of the changes to stderr")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug diagnostics and the debug log file")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	envResult := envfile.Load()

	debug := opts.debug || envutil.Bool("SPELLFIX_DEBUG")
	logger := logging.Stderr(debug)

	if envResult.Err != nil {
		logger.Warn("cli.env_load_failed", "path", envResult.Path, "error", envResult.Err.Error())
	} else if envResult.Loaded {
		logger.Debug("cli.env_loaded", "path", envResult.Path, "keys", envResult.Keys)
	}

	dataDir, dirErr := appdirs.DataDir()
	if dirErr != nil {
		logger.Warn("cli.data_dir_unavailable", "error", dirErr.Error())
	} else {
		fileLog, err := logging.NewFileLogger(dataDir, debug)
		if err != nil {
			logger.Warn("cli.log_file_failed", "error", err.Error())
		}
		if fileLog.Close != nil {
			defer fileLog.Close()
		}
		if fileLog.Enabled {
			logger = logging.Fanout(logger, fileLog.Logger)
			logger.Debug("cli.log_file", "path", fileLog.Path)
		}
	}

	cfg, err := loadConfig(cmd, opts, dataDir)
	if err != nil {
		return err
	}
	logger.Debug("cli.config",
		"endpoint", cfg.Endpoint,
		"language", cfg.Language,
		"timeout", cfg.Timeout,
		"max_chunk_chars", cfg.MaxChunkChars,
		"local", opts.local,
	)

	raw, err := readInput(cmd, args)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var checker engine.Checker
	if !opts.local {
		client, err := languagetool.NewClient(cfg.Endpoint, cfg.Language, cfg.Timeout, logger)
		if err != nil {
			return fmt.Errorf("grammar service client: %w", err)
		}
		checker = client
	}

	out := engine.New(cfg, checker, logger).Run(cmd.Context(), raw)

	if opts.showDiff {
		fmt.Fprint(cmd.ErrOrStderr(), diff.Render(diff.TextDiff(raw, out)))
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func loadConfig(cmd *cobra.Command, opts *options, dataDir string) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = envutil.String("SPELLFIX_CONFIG", "")
	}
	if path == "" && dataDir != "" {
		path = appdirs.ConfigPath(dataDir)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Endpoint = opts.url
	}
	if flags.Changed("language") {
		cfg.Language = opts.language
	}
	if flags.Changed("timeout") {
		if opts.timeout <= 0 {
			return config.Config{}, fmt.Errorf("--timeout must be positive, got %v", opts.timeout)
		}
		cfg.Timeout = time.Duration(opts.timeout * float64(time.Second))
	}
	if flags.Changed("max-chunk") {
		if opts.maxChunk <= 0 {
			return config.Config{}, fmt.Errorf("--max-chunk must be positive, got %d", opts.maxChunk)
		}
		cfg.MaxChunkChars = opts.maxChunk
	}
	cfg.Debug = cfg.Debug || opts.debug
	return cfg, nil
}

// readInput prefers piped stdin over positional arguments. A terminal on
// stdin, or an empty pipe, falls back to the arguments joined by spaces.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok {
		info, err := file.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return strings.Join(args, " "), nil
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	if len(data) > 0 {
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
