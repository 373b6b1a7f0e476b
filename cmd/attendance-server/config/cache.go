package config

// cacheConf configures the optional shared cache.
type cacheConf struct {
	// RedisAddr, when set, switches the stats cache from in-memory to Redis.
	RedisAddr string `yaml:"redis_addr"`
}
