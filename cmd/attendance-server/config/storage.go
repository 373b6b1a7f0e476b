package config

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Intechlligent1/AttendanceSystem/storage"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

type storageConf struct {
	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`
	storage.DSNConf `yaml:",inline"`
	Debug           bool `yaml:"debug"`
}

func (c *storageConf) validate() error {
	if c.Driver == storage.DriverSQLite {
		if c.DataDir == "" && c.DSN == "" {
			return errors.New("error in storage conf: data_dir must be specified")
		}
		return nil
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return err
}

var defaultStorageConf = storageConf{
	Driver: storage.DriverSQLite,
	DSNConf: storage.DSNConf{
		User: "attendance",
		Host: "localhost",
		DB:   "attendance",
	},
	Debug: false,
}

// LoadStorageBackends loads and returns the storage backends for the passed Config
func LoadStorageBackends(c storageConf, hashParams storage.Argon2idParams) (model.Backends, error) {
	cfg := storage.Config{
		Driver:    c.Driver,
		DSN:       c.DSN,
		DataDir:   c.DataDir,
		Debug:     c.Debug,
		UsersHash: hashParams,
	}
	backs, err := storage.LoadStorageBackends(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	log.Info("Loaded storage backend")
	return backs, nil
}
