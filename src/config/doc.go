// Package config defines the configuration for a Meridian node.
//
// Regardless of how Meridian is started, directly from Go code or as a
// standalone process from the command line, it uses the Config object defined
// in this package to store and forward configuration options. On top of these
// options, Meridian relies on a data directory, defined by Config.DataDir,
// where the badger database lives by default.
//
// The package also pins the currency parameters of the Meridian network:
// address prefixes, fee floors and ring-size rules.
package config
