package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/addonkit/internal/app"
)

// settings are the command-line settings shared by every command. They come
// from flags, ADDONCTL_* environment variables and the config file, in that
// order of precedence.
type settings struct {
	LogLevel  string   `mapstructure:"log_level"`
	LogFormat string   `mapstructure:"log_format"`
	Debug     bool     `mapstructure:"debug"`
	Dirs      []string `mapstructure:"dirs"`
}

type cli struct {
	v        *viper.Viper
	cfgFile  string
	settings settings
	logger   *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "addonctl",
		Short:         "Inspect and register add-ons",
		Long:          `addonctl discovers the modules of an add-on, lists its registrable classes, and runs registration against an in-memory host.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "config file (default: .addonctl.{yaml,toml} in . or $HOME/.config/addonctl)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json, logfmt)")
	flags.BoolP("debug", "d", false, "load debug modules and enable reloading")
	flags.StringSlice("dirs", nil, "target directories (default: addon.toml target_dirs, else every subdirectory)")

	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = c.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = c.v.BindPFlag("dirs", flags.Lookup("dirs"))

	root.AddCommand(
		newDiscoverCmd(c),
		newClassesCmd(c),
		newRegisterCmd(c),
		newWatchCmd(c),
		newPreviewCmd(c),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	c.v.SetEnvPrefix("addonctl")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.SetConfigName(".addonctl")
		c.v.AddConfigPath(".")
		c.v.AddConfigPath("$HOME/.config/addonctl")
	}
	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || c.cfgFile != "" {
			return err
		}
	}
	if err := c.v.Unmarshal(&c.settings); err != nil {
		return err
	}

	cfg := app.DefaultLoggerConfig()
	cfg.Level = c.settings.LogLevel
	cfg.Format = c.settings.LogFormat
	cfg.Output = cmd.ErrOrStderr()
	cfg.Prefix = "addonctl"
	c.logger = app.NewLogger(cfg)
	app.SetLogger(c.logger)
	return nil
}
