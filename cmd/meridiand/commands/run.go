package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridian-network/meridian/src/monitor"
	"github.com/meridian-network/meridian/src/node"
)

// NewRunCmd returns the command that starts a Meridian node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run node",
		PreRunE: loadConfig,
		RunE:    runMeridian,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runMeridian(cmd *cobra.Command, args []string) error {
	backend := monitor.NewStaticBackend()

	n, err := node.NewNode(_config, backend)
	if err != nil {
		_config.Logger().Error("Cannot initialize node:", err)
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		_config.Logger().WithField("signal", sig).Debug("Caught signal")
		n.Shutdown()
	}()

	return n.Run()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.LogFile, "Duplicate log output to this file")
	cmd.Flags().String("moniker", _config.Moniker, "Optional name")

	// Network
	cmd.Flags().StringSlice("seeds", _config.Seeds, "Seed IP:Port endpoints to probe at startup")
	cmd.Flags().DurationP("probe-timeout", "t", _config.ProbeTimeout, "Timeout of each seed probe")

	// Service
	cmd.Flags().Bool("no-service", _config.NoService, "Disable the HTTP API service")
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service")

	// Store
	cmd.Flags().Bool("store", _config.Store, "Persist monitored transactions with badgerDB")
	cmd.Flags().String("db", _config.DatabaseDir, "Database directory")

	// Monitor
	cmd.Flags().Duration("poll-interval", _config.PollInterval, "Time between transaction polls")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	logFields := logrus.Fields{
		"DataDir":      _config.DataDir,
		"LogLevel":     _config.LogLevel,
		"Moniker":      _config.Moniker,
		"Seeds":        _config.Seeds,
		"ProbeTimeout": _config.ProbeTimeout,
		"NoService":    _config.NoService,
		"ServiceAddr":  _config.ServiceAddr,
		"Store":        _config.Store,
		"PollInterval": _config.PollInterval,
	}

	if _config.Store {
		logFields["DatabaseDir"] = _config.DatabaseDir
	}

	_config.Logger().WithFields(logFields).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/meridian.toml (.json, .yaml also work)
	viper.SetConfigName("meridian")      // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
