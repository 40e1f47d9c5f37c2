package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clapperhq/clapper/api"
	"github.com/clapperhq/clapper/catalog"
	"github.com/clapperhq/clapper/config"
	"github.com/clapperhq/clapper/feed"
	"github.com/clapperhq/clapper/profile"
	"github.com/clapperhq/clapper/session"
	"github.com/clapperhq/clapper/subscription"
	"github.com/clapperhq/clapper/ui"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	apiClient      *api.Client
	sessionStorage *session.Storage
	sessionStore   *session.Store
	homeStore      *catalog.Home
	browseStore    *catalog.Browse
	playbackStore  *catalog.Playback
	profileLists   *profile.Lists
	favorites      *profile.Favorites
	feedStore      *feed.Store
	planStore      *subscription.Store
	uiState        *ui.Store
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clapper",
	Short: "A terminal client for the Clapper streaming service",
	Long: `clapper is a CLI client for the Clapper streaming service. It signs in,
browses the catalog, plays titles, manages favorites and watch history,
and follows the activity feed.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if sessionStorage != nil {
			if err := sessionStorage.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close session storage")
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(plansCmd)
}

// initializeApp loads configuration and wires the API client, the session,
// and every store behind it. A 401 on any guarded endpoint tears the whole
// session down through the unauthorized hook.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	apiClient, err = api.NewClient(cfg.API.URL, logger,
		api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	sessionStorage, err = session.NewStorage(cfg.Session.Path)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}

	nav := &consoleNavigator{logger: logger}
	sessionStore = session.NewStore(apiClient, sessionStorage, nav, logger)

	profileLists = profile.NewLists(apiClient, cfg.Profile.PageSize, logger)
	favorites = profile.NewFavorites(apiClient, sessionStore, nav, profileLists, logger)
	sessionStore.SetFavorites(favorites)

	homeStore = catalog.NewHome(apiClient, cfg.Catalog.HomePageSize, logger)
	browseStore = catalog.NewBrowse(apiClient, cfg.Catalog.CategoryPageSize, logger)
	playbackStore = catalog.NewPlayback(apiClient, logger)
	feedStore = feed.NewStore(apiClient, logger)
	planStore = subscription.NewStore(apiClient, logger)
	uiState = ui.NewStore()

	// Guarded data is per-account: drop it whenever the session ends.
	sessionStore.OnLogout(func() {
		profileLists.Reset()
		feedStore.Reset()
	})
	apiClient.SetUnauthorizedHook(func() {
		logger.Warn().Msg("Session expired, signing out")
		sessionStore.Logout()
	})

	sessionStore.Restore()

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// consoleNavigator surfaces the redirects the stores request. In the web
// frontend these drive the router; here they tell the user where they
// ended up.
type consoleNavigator struct {
	logger zerolog.Logger
}

func (n *consoleNavigator) Redirect(path string) {
	n.logger.Debug().Str("path", path).Msg("Redirect requested")
	if strings.HasPrefix(path, session.LoginPath) {
		fmt.Println("Sign in required. Run: clapper login")
	}
}
