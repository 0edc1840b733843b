package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"indiamap/internal/app"
	"indiamap/internal/config"
	"indiamap/internal/tui"
	"indiamap/internal/web"
)

var (
	home       string
	configPath string
	dataset    string
	themeName  string
	withWeb    bool

	appCtx *app.App
	cfg    *config.Config
)

// Execute runs the command line and releases the App whatever the outcome.
func Execute() error {
	return run(newRootCmd())
}

func run(root *cobra.Command) error {
	err := root.Execute()
	// cobra skips PersistentPostRun hooks when RunE fails, so the App is
	// closed here instead.
	if appCtx != nil {
		if cerr := appCtx.Close(); cerr != nil && err == nil {
			err = cerr
		}
		appCtx = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	appCtx, cfg = nil, nil

	root := &cobra.Command{
		Use:          "indiamap",
		Short:        "Interactive India states map for the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig()
			if err != nil {
				return err
			}
			if cmd.Annotations["skipApp"] == "true" {
				return nil
			}
			appCtx, err = app.Open(cfg, home)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if withWeb {
				srv := web.New(appCtx)
				var err error
				url, err = srv.Start(cmd.Context())
				if err != nil {
					return err
				}
				appCtx.Logs().System.Info("web mirror at %s", url)
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := srv.Stop(ctx); err != nil {
						appCtx.Logs().System.Warn("web mirror: %v", err)
					}
				}()
			}
			if err := tui.Run(appCtx, url); err != nil {
				return fmt.Errorf("indiamap: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir for config, logs and cache (default ~/.indiamap)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.json)")
	root.PersistentFlags().StringVar(&dataset, "dataset", "", "GeoJSON file path or http(s) URL")
	root.PersistentFlags().StringVar(&themeName, "theme", "", "initial theme: light or dark")
	root.Flags().BoolVar(&withWeb, "web", false, "also serve the browser mirror")

	root.AddCommand(serveCmd(), featuresCmd(), initConfigCmd())
	return root
}

// loadConfig resolves the home directory, applies .env files and the config
// file, then the command-line overrides.
func loadConfig() (*config.Config, error) {
	if home == "" {
		home = app.DefaultHome()
	}
	if err := config.LoadDotEnv(app.DotEnvFiles(home)...); err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = app.ConfigPath(home)
	}
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataset != "" {
		c.Dataset.Source = dataset
	}
	if themeName != "" {
		c.UI.Theme = themeName
	}
	if err := config.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}
