package storage

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// DriverType selects the database driver.
type DriverType string

const (
	// DriverSQLite is the SQLite driver; the default for single-node setups.
	DriverSQLite DriverType = "sqlite"
	// DriverMySQL is the MySQL driver
	DriverMySQL DriverType = "mysql"
	// DriverPostgres is the PostgreSQL driver
	DriverPostgres DriverType = "postgres"
)

var SupportedDrivers = []DriverType{
	DriverSQLite,
	DriverMySQL,
	DriverPostgres,
}

// DSNConf holds the connection parameters from which DSN builds a driver
// connection string for the network databases.
type DSNConf struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
}

// DSN builds a connection string for the passed driver from conf. SQLite
// does not use one; its database is a file below Config.DataDir.
func DSN(driver DriverType, conf DSNConf) (string, error) {
	port := conf.Port
	switch driver {
	case DriverMySQL:
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
			conf.User, conf.Password, conf.Host, port, conf.DB,
		), nil
	case DriverPostgres:
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			conf.Host, conf.User, conf.Password, conf.DB, port,
		), nil
	case DriverSQLite:
		return "", errors.Errorf("driver %s does not use dsn", driver)
	default:
		return "", errors.Errorf("unsupported driver '%s'", driver)
	}
}

// Config represents the database configuration
type Config struct {
	// Driver is the database driver type
	Driver DriverType `yaml:"driver"`
	// DSN is the connection string; for SQLite it is the database file path
	DSN string `yaml:"dsn"`
	// DataDir is the directory holding the SQLite database file when no DSN
	// is given
	DataDir string `yaml:"data_dir"`
	// Debug enables query logging
	Debug bool `yaml:"debug"`
	// UsersHash defines parameters for hashing operator passwords
	UsersHash Argon2idParams `yaml:"users_hash"`
}

func (cfg Config) dialector() (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = filepath.Join(cfg.DataDir, "attendance.db")
		}
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Connect opens a database connection according to cfg.
func Connect(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	return gorm.Open(
		dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
}

// LoadStorageBackends initializes the storage and returns grouped backends.
func LoadStorageBackends(cfg Config) (model.Backends, error) {
	s, err := NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	return s.Backends(), nil
}
