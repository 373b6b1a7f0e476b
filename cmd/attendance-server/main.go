package main

import (
	"os"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	attendance "github.com/Intechlligent1/AttendanceSystem"
	"github.com/Intechlligent1/AttendanceSystem/api/adminapi"
	"github.com/Intechlligent1/AttendanceSystem/cmd/attendance-server/config"
	"github.com/Intechlligent1/AttendanceSystem/internal/cache"
	"github.com/Intechlligent1/AttendanceSystem/internal/logger"
	"github.com/Intechlligent1/AttendanceSystem/internal/version"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	if err := logger.Init(
		logger.Conf{
			Level:  c.Logging.Internal.Level,
			Dir:    c.Logging.Internal.Dir,
			StdErr: c.Logging.Internal.StdErr,
		},
	); err != nil {
		log.Fatal(err)
	}
	log.WithField("version", version.VERSION).Info("Loaded Config")

	statsCache := cache.New()
	if redisAddr := c.Caching.RedisAddr; redisAddr != "" {
		redisCache, err := cache.NewRedis(
			&redis.Options{
				Addr: redisAddr,
			},
		)
		if err != nil {
			log.WithError(err).Fatal("could not init redis cache")
		}
		statsCache = redisCache
		log.Info("Loaded Redis Cache")
	}

	backs, err := config.LoadStorageBackends(c.Storage, c.API.Admin.Argon2idParams)
	if err != nil {
		log.Fatal(err)
	}

	svc, err := attendance.NewService(
		c.Server, backs, statsCache,
		&adminapi.Options{UsersEnabled: c.API.Admin.UsersEnabled},
	)
	if err != nil {
		log.Fatal(err)
	}
	log.Info("Initialized Service")

	svc.Start()
}
