package config

import "errors"

var (
	ErrReadFile       = errors.New("config: failed to read config file")
	ErrDecode         = errors.New("config: failed to decode config")
	ErrInvalidMethod  = errors.New("config: invalid obfuscation method")
	ErrInvalidBackend = errors.New("config: invalid cache backend")
	ErrInvalidLog     = errors.New("config: invalid log settings")
	ErrMissingRedis   = errors.New("config: redis cache backend requires cache.redis_url")
)
