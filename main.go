package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/willyv3/ghprofile/internal/config"
	"github.com/willyv3/ghprofile/internal/contrib"
	"github.com/willyv3/ghprofile/internal/github"
)

// defaultWidth is used when stdout is not a terminal and no width is set.
const defaultWidth = minGraphWidth + 8

var (
	// Global flags
	configPath string
	verbose    bool
	overrides  config.Config

	// Calendar flags
	synthetic bool
	todayFlag string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
	client *github.Client
)

// rootCmd launches the interactive profile page
var rootCmd = &cobra.Command{
	Use:   "ghprofile [username]",
	Short: "A GitHub profile page in your terminal",
	Long: `ghprofile renders a GitHub profile page: the sidebar, popular
repositories, the contribution calendar and the activity timeline.

The username defaults to the configured one, then to the account gh is
logged in as. Sections that cannot be fetched fall back to bundled sample
data, and the calendar falls back to generated data.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

// renderCmd prints the page once
var renderCmd = &cobra.Command{
	Use:   "render [username]",
	Short: "Print the profile page to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

// calendarCmd prints contribution data as JSON
var calendarCmd = &cobra.Command{
	Use:   "calendar [username]",
	Short: "Print contribution calendar data as JSON",
	Long: `Prints the contribution data the calendar is drawn from: the trailing
year of real contributions followed by empty years back to --earliest-year.
Without access to GitHub, or with --synthetic, generated data is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

// themesCmd lists available themes
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range ThemeNames() {
			marker := "  "
			if name == currentThemeName {
				marker = "* "
			}
			fmt.Fprintln(out, marker+name)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/ghprofile/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&overrides.Host, "host", "", "GitHub host")
	pf.StringVarP(&overrides.Theme, "theme", "t", "", "Theme name (see 'ghprofile themes')")
	pf.StringVar(&overrides.ThemeFile, "theme-file", "", "YAML colour scheme to use as the theme")
	pf.DurationVar(&overrides.Timeout, "timeout", 0, "API request timeout")
	pf.IntVar(&overrides.EarliestYear, "earliest-year", 0, "Oldest year in the year selector")
	pf.IntVar(&overrides.RepoLimit, "repo-limit", 0, "Number of popular repositories")
	pf.IntVar(&overrides.EventLimit, "event-limit", 0, "Number of public events to read")
	pf.StringVar(&overrides.LogFile, "log-file", "", "Log file for the interactive mode")
	pf.IntVarP(&overrides.Width, "width", "w", 0, "Render width (default: terminal width)")

	calendarCmd.Flags().BoolVar(&synthetic, "synthetic", false, "Print generated data without contacting GitHub")
	calendarCmd.Flags().StringVar(&todayFlag, "today", "", "Reference date as YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(renderCmd, calendarCmd, themesCmd)
}

func main() {
	// Recover from panics to restore terminal state
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup resolves config, the logger, the theme and the GitHub client.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath, &overrides)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = newLogger(cfg, isInteractive(cmd), verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := InitTheme(cfg.Theme, cfg.ThemeFile); err != nil {
		logger.Warn("Falling back to the github theme", zap.Error(err))
	}

	client, err = github.NewClient(github.Options{Host: cfg.Host, Timeout: cfg.Timeout})
	if err != nil {
		logger.Warn("GitHub unavailable, using sample data", zap.Error(err))
		client = nil
	}
	return nil
}

// isInteractive reports whether cmd is the root command, which runs the TUI.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent()
}

// newLogger builds a production logger. The interactive mode owns the
// terminal, so it logs to cfg.LogFile or nowhere.
func newLogger(cfg *config.Config, interactive, verbose bool) (*zap.Logger, error) {
	if interactive && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if interactive {
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
	}
	return zc.Build()
}

// source returns the client as a profileSource, or nil when offline.
func source() profileSource {
	if client == nil {
		return nil
	}
	return client
}

func newLoader() *pageLoader {
	return &pageLoader{
		source:       source(),
		logger:       logger,
		now:          time.Now,
		loc:          time.Local,
		earliestYear: cfg.EarliestYear,
		repoLimit:    cfg.RepoLimit,
		eventLimit:   cfg.EventLimit,
	}
}

// avatarHTTPClient fetches avatars from the public CDN without credentials.
func avatarHTTPClient() *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// resolveUsername picks the argument, then the configured username, then the
// authenticated account. Empty means the sample profile.
func resolveUsername(ctx context.Context, args []string) string {
	if len(args) > 0 {
		return strings.TrimPrefix(args[0], "@")
	}
	if cfg.Username != "" {
		return cfg.Username
	}
	if client == nil || !client.Authenticated() {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		logger.Warn("Could not resolve the authenticated user", zap.Error(err))
		return ""
	}
	return user.Login
}

func runInteractive(cmd *cobra.Command, args []string) error {
	username := resolveUsername(cmd.Context(), args)
	logger.Info("Starting", zap.String("username", username), zap.String("theme", currentThemeName))

	m := newModel(username, newLoader(), avatarHTTPClient(), logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username := resolveUsername(ctx, args)

	width := cfg.Width
	if width == 0 {
		width = defaultWidth
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	page := newLoader().Load(ctx, username)
	httpClient := avatarHTTPClient()

	m := newModel(username, nil, httpClient, logger)
	m.applyPage(page)
	if page.Profile.Avatar != "" {
		img, err := fetchAvatar(ctx, httpClient, page.Profile.Avatar, avatarPixels)
		if err != nil {
			logger.Warn("Avatar unavailable", zap.Error(err))
		} else {
			m.avatarImg = img
			m.renderAvatar()
		}
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), m.renderStatic(width))
	return err
}

func runCalendar(cmd *cobra.Command, args []string) error {
	today := time.Now()
	if todayFlag != "" {
		t, err := time.Parse(contrib.DateLayout, todayFlag)
		if err != nil {
			return fmt.Errorf("invalid --today %q: %w", todayFlag, err)
		}
		today = t
	}

	var data contrib.Data
	if synthetic {
		data = contrib.Generate(today)
	} else {
		username := resolveUsername(cmd.Context(), args)
		builder := &contrib.Builder{
			Logger:       logger,
			Now:          func() time.Time { return today },
			EarliestYear: cfg.EarliestYear,
		}
		if client != nil && username != "" {
			builder.Source = client
		}
		data = builder.Build(cmd.Context(), username)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
