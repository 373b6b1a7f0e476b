package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	attendance "github.com/Intechlligent1/AttendanceSystem"
)

// Config holds the complete server configuration.
type Config struct {
	Server  attendance.ServerConf `yaml:"server"`
	Storage storageConf           `yaml:"storage"`
	API     apiConf               `yaml:"api"`
	Logging loggingConf           `yaml:"logging"`
	Caching cacheConf             `yaml:"caching"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

// possibleConfigLocations are checked in order when no config file is passed.
var possibleConfigLocations = []string{
	"config.yaml",
	"/etc/attendance/config.yaml",
}

// Load reads the config file, applies defaults and validates all sections.
// It terminates the process on any error; the server cannot run without a
// usable configuration.
func Load(file string) {
	if file == "" {
		for _, candidate := range possibleConfigLocations {
			if fileutils.FileExists(candidate) {
				file = candidate
				break
			}
		}
	}
	if file == "" {
		log.Fatal("no config file found")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}
	c := Config{
		Storage: defaultStorageConf,
		API:     defaultAPIConf,
		Logging: defaultLoggingConf,
	}
	if err = yaml.Unmarshal(data, &c); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = c.Storage.validate(); err != nil {
		log.WithError(err).Fatal("invalid storage config")
	}
	if err = c.Logging.validate(); err != nil {
		log.WithError(err).Fatal("invalid logging config")
	}
	conf = &c
}
