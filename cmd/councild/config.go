package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	confHome     = "home"
	confHeight   = "height"
	confLogLevel = "log_level"
	confDBName   = "db_name"
)

// loadConfig reads <home>/config.yaml if present. Every setting can be
// overridden with a COUNCIL_ prefixed environment variable.
func loadConfig(home string) (*viper.Viper, error) {
	conf := viper.New()
	conf.SetDefault(confHome, home)
	conf.SetDefault(confHeight, int64(1))
	conf.SetDefault(confLogLevel, "info")
	conf.SetDefault(confDBName, "council")
	conf.SetEnvPrefix("COUNCIL")
	conf.AutomaticEnv()

	path := filepath.Join(home, "config.yaml")
	switch _, err := os.Stat(path); {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "config file: %s", err)
	}
	conf.SetConfigType("yaml")
	conf.SetConfigFile(path)
	if err := conf.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot read %q: %s", path, err)
	}
	return conf, nil
}

// newLogger returns a logger that writes lines of at least the configured
// level.
func newLogger(w io.Writer, conf *viper.Viper) (log.Logger, error) {
	allow, err := log.AllowLevel(conf.GetString(confLogLevel))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "councild")
	return log.NewFilter(logger, allow), nil
}

func dataDir(conf *viper.Viper) string {
	return filepath.Join(conf.GetString(confHome), "data")
}
