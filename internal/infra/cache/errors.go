package cache

import "errors"

var (
	// ErrCacheMiss возвращается, когда ключа нет в кэше
	ErrCacheMiss = errors.New("cache: miss")

	// ErrConnect возвращается при ошибке подключения к Redis
	ErrConnect = errors.New("cache: failed to connect")

	// ErrCodec возвращается при ошибке (де)сериализации значения
	ErrCodec = errors.New("cache: failed to encode value")

	// ErrOperation возвращается при ошибке выполнения команды Redis
	ErrOperation = errors.New("cache: operation failed")
)
