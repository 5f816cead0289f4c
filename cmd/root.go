// ABOUTME: Root command for the webcost CLI
// ABOUTME: Handles global flags, configuration, and client construction

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/config"
	"github.com/AnurajMane/web-cost/internal/debuglog"
	"github.com/AnurajMane/web-cost/internal/session"
)

var (
	apiURLFlag       string
	analyticsURLFlag string
	jsonOutput       bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "webcost",
	Short: "Terminal client for the Cloud Cost Intelligence platform",
	Long: `webcost is a terminal client for the Cloud Cost Intelligence platform.

It talks to two backends: the primary API (auth, accounts, alerts, settings,
assistant) and the analytics API (cost data, free tier usage). Paths are
routed automatically; you only ever configure the two origins.

Environment Variables:
  WEBCOST_API_URL              Primary backend origin (required)
  WEBCOST_ANALYTICS_URL        Analytics backend origin (required)
  WEBCOST_ANALYTICS_PREFIXES   Override analytics path prefixes (comma-separated)
  WEBCOST_TIMEOUT              Request timeout in seconds (default: 30)
  WEBCOST_DEBUG                Enable the debug log (default: false)`,
}

// Execute runs the root command
func Execute() error {
	defer debuglog.Close()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Primary backend origin (overrides WEBCOST_API_URL)")
	rootCmd.PersistentFlags().StringVar(&analyticsURLFlag, "analytics-url", "", "Analytics backend origin (overrides WEBCOST_ANALYTICS_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig resolves configuration from flags, env, and .env in that order.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if analyticsURLFlag != "" {
		cfg.AnalyticsURL = analyticsURLFlag
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the API client and session manager from configuration.
func newClient() (*api.Client, *session.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Debug {
		if err := debuglog.Init(session.DefaultConfigDir()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
		}
	}

	prefixes := cfg.AnalyticsPrefixes
	if len(prefixes) == 0 {
		prefixes = api.DefaultAnalyticsPrefixes
	}
	routes := api.NewRouteTable(cfg.APIURL, cfg.AnalyticsURL, prefixes)

	store := session.NewTokenStore(session.DefaultConfigDir())
	client := api.New(routes, store, api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	sess := session.NewManager(client, store)

	return client, sess, nil
}

// newOneShotClient builds a client for non-interactive commands. On a 401 the
// token is already cleared; the hook just tells the user what to do next.
func newOneShotClient() (*api.Client, *session.Manager, error) {
	client, sess, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	client.OnUnauthorized(func() {
		sess.HandleUnauthorized()
		fmt.Fprintln(os.Stderr, "Session expired. Run 'webcost login' to sign in again.")
	})
	return client, sess, nil
}
