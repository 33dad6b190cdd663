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

	"github.com/atomicstack/popup-apps/internal/app"
	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigFile  = "POPUP_APPS_CONFIG"
	envBackend     = "POPUP_APPS_BACKEND"
	envSupervisor  = "POPUP_APPS_SUPERVISOR"
	envGroupBy     = "POPUP_APPS_GROUP_BY"
	envTimeout     = "POPUP_APPS_TIMEOUT"
	envRetries     = "POPUP_APPS_RETRIES"
	envRateLimit   = "POPUP_APPS_RATE_LIMIT"
	envRefresh     = "POPUP_APPS_REFRESH"
	envOpenCommand = "POPUP_APPS_OPEN_COMMAND"
	envWidth       = "POPUP_APPS_WIDTH"
	envHeight      = "POPUP_APPS_HEIGHT"
	envShowFooter  = "POPUP_APPS_FOOTER"
	envVerbose     = "POPUP_APPS_VERBOSE"
	envTrace       = "POPUP_APPS_TRACE"
	envLogFile     = "POPUP_APPS_LOG_FILE"
)

const (
	DefaultBackend    = "http://localhost:5000"
	DefaultSupervisor = "http://localhost:5500"
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 2
)

// fileConfig mirrors the optional TOML file. Pointer fields distinguish
// absent keys from zero values.
type fileConfig struct {
	Backend     *string  `toml:"backend"`
	Supervisor  *string  `toml:"supervisor"`
	GroupBy     *string  `toml:"group_by"`
	Timeout     *string  `toml:"timeout"`
	Retries     *int     `toml:"retries"`
	RateLimit   *float64 `toml:"rate_limit"`
	Refresh     *string  `toml:"refresh"`
	OpenCommand *string  `toml:"open_command"`
	Width       *int     `toml:"width"`
	Height      *int     `toml:"height"`
	Footer      *bool    `toml:"footer"`
	Verbose     *bool    `toml:"verbose"`
	Trace       *bool    `toml:"trace"`
	LogFile     *string  `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in order flag, environment, config file, built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-apps", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", "", "path to a TOML config file")
	backendURL := fs.String("backend", DefaultBackend, "apps backend origin serving /api/apps and icons")
	supervisorURL := fs.String("supervisor", DefaultSupervisor, "supervisor origin serving /api/supervisor/launch")
	groupBy := fs.String("group-by", string(catalog.GroupBySource), "descriptor field used as folder key (source or category)")
	timeout := fs.Duration("timeout", DefaultTimeout, "per-request HTTP timeout")
	retries := fs.Int("retries", DefaultRetries, "retries for failed HTTP requests")
	rateLimit := fs.Float64("rate-limit", 0, "maximum HTTP requests per second (0 disables limiting)")
	refresh := fs.Duration("refresh", 0, "catalog refresh interval (0 loads once)")
	openCommand := fs.String("open-command", "", "command used to open launched app URLs")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", false, "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", false, "print success messages for actions")
	logFile := fs.String("log-file", "", "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := *configPath
	if !set["config"] {
		path = envOrDefault(env, envConfigFile, "")
	}
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	r := resolver{set: set, env: env}
	*backendURL = r.strValue("backend", envBackend, file.Backend, *backendURL)
	*supervisorURL = r.strValue("supervisor", envSupervisor, file.Supervisor, *supervisorURL)
	*groupBy = r.strValue("group-by", envGroupBy, file.GroupBy, *groupBy)
	*openCommand = r.strValue("open-command", envOpenCommand, file.OpenCommand, *openCommand)
	*logFile = r.strValue("log-file", envLogFile, file.LogFile, *logFile)
	*retries = r.intValue("retries", envRetries, file.Retries, *retries)
	*width = r.intValue("width", envWidth, file.Width, *width)
	*height = r.intValue("height", envHeight, file.Height, *height)
	*rateLimit = r.floatValue("rate-limit", envRateLimit, file.RateLimit, *rateLimit)
	*footer = r.boolValue("footer", envShowFooter, file.Footer, *footer)
	*trace = r.boolValue("trace", envTrace, file.Trace, *trace)
	*verbose = r.boolValue("verbose", envVerbose, file.Verbose, *verbose)
	if *timeout, err = r.durationValue("timeout", envTimeout, file.Timeout, *timeout); err != nil {
		return Config{}, err
	}
	if *refresh, err = r.durationValue("refresh", envRefresh, file.Refresh, *refresh); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	grouping, ok := catalog.ParseGroupBy(*groupBy)
	if !ok {
		return Config{}, fmt.Errorf("group-by must be %q or %q (got %q)", catalog.GroupBySource, catalog.GroupByCategory, *groupBy)
	}

	cfg := Config{
		App: app.Config{
			BackendURL:    strings.TrimRight(strings.TrimSpace(*backendURL), "/"),
			SupervisorURL: strings.TrimRight(strings.TrimSpace(*supervisorURL), "/"),
			GroupBy:       grouping,
			Timeout:       *timeout,
			Retries:       *retries,
			RateLimit:     *rateLimit,
			Refresh:       *refresh,
			OpenCommand:   strings.TrimSpace(*openCommand),
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"backend":     *backendURL,
			"supervisor":  *supervisorURL,
			"groupBy":     string(grouping),
			"timeout":     timeout.String(),
			"retries":     strconv.Itoa(*retries),
			"rateLimit":   strconv.FormatFloat(*rateLimit, 'g', -1, 64),
			"refresh":     refresh.String(),
			"openCommand": *openCommand,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// resolver picks a value from flag, environment or file, in that order. A
// malformed environment value is ignored in favour of the next source.
type resolver struct {
	set map[string]bool
	env map[string]string
}

func (r resolver) strValue(name, key string, file *string, flagValue string) string {
	if r.set[name] {
		return flagValue
	}
	if v, ok := r.env[key]; ok {
		return v
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) intValue(name, key string, file *int, flagValue int) int {
	if r.set[name] {
		return flagValue
	}
	if v, ok := envInt(r.env, key); ok {
		return v
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) floatValue(name, key string, file *float64, flagValue float64) float64 {
	if r.set[name] {
		return flagValue
	}
	if v, ok := envFloat(r.env, key); ok {
		return v
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) boolValue(name, key string, file *bool, flagValue bool) bool {
	if r.set[name] {
		return flagValue
	}
	if v, ok := envBool(r.env, key); ok {
		return v
	}
	if file != nil {
		return *file
	}
	return flagValue
}

func (r resolver) durationValue(name, key string, file *string, flagValue time.Duration) (time.Duration, error) {
	if r.set[name] {
		return flagValue, nil
	}
	if v, ok := envDuration(r.env, key); ok {
		return v, nil
	}
	if file != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*file))
		if err != nil {
			return 0, fmt.Errorf("config file %s: %w", name, err)
		}
		return d, nil
	}
	return flagValue, nil
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

func envInt(env map[string]string, key string) (int, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envFloat(env map[string]string, key string) (float64, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envBool(env map[string]string, key string) (bool, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func envDuration(env map[string]string, key string) (time.Duration, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return parsed, true
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

// Validate checks values that parse but cannot work.
func Validate(cfg Config) error {
	var errs []error
	if err := validateOrigin("backend", cfg.App.BackendURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateOrigin("supervisor", cfg.App.SupervisorURL); err != nil {
		errs = append(errs, err)
	}
	if cfg.App.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout))
	}
	if cfg.App.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must be >= 0 (got %d)", cfg.App.Retries))
	}
	if cfg.App.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate-limit must be >= 0 (got %g)", cfg.App.RateLimit))
	}
	if cfg.App.Refresh < 0 {
		errs = append(errs, fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh))
	}
	return errors.Join(errs...)
}

func validateOrigin(name, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) origin (got %q)", name, value)
	}
	return nil
}
