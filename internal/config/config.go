package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/title-page-form/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	NoOpen  bool
}

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultCompletions = "/completions/composers"
	defaultTimeout     = 60 * time.Second
)

const (
	envBaseURL     = "TITLE_PAGE_BASE_URL"
	envCompletions = "TITLE_PAGE_COMPLETIONS"
	envTimeout     = "TITLE_PAGE_TIMEOUT"
	envWidth       = "TITLE_PAGE_WIDTH"
	envHeight      = "TITLE_PAGE_HEIGHT"
	envShowFooter  = "TITLE_PAGE_FOOTER"
	envNoOpen      = "TITLE_PAGE_NO_OPEN"
	envVerbose     = "TITLE_PAGE_VERBOSE"
	envTrace       = "TITLE_PAGE_TRACE"
	envLogFile     = "TITLE_PAGE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("title-page-form", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	baseURL := fs.String("base-url", envOrDefault(env, envBaseURL, defaultBaseURL), "base URL of the title page backend; endpoint paths are joined under it")
	completions := fs.String("completions", envOrDefault(env, envCompletions, defaultCompletions), "composer completions endpoint (empty disables autocomplete)")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "HTTP request timeout")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	noOpen := fs.Bool("no-open", envOrBool(env, envNoOpen, false), "do not open combined files in the browser")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			BaseURL:     strings.TrimSpace(*baseURL),
			Completions: strings.TrimSpace(*completions),
			Timeout:     *timeout,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Verbose:     *verbose,
			NoOpen:      *noOpen,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			NoOpen:  *noOpen,
		},
		Flags: map[string]string{
			"baseURL":     *baseURL,
			"completions": *completions,
			"timeout":     timeout.String(),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"noOpen":      strconv.FormatBool(*noOpen),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("viewport size must be >= 0 (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", cfg.App.Timeout)
	}
	if cfg.App.BaseURL == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(cfg.App.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base url must be absolute (got %q)", cfg.App.BaseURL)
	}
	return nil
}
