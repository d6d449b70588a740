// Package redis opens the Redis connection backing the shared page cache.
//
//	client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithPoolSize(20))
//	if err != nil {
//	    return err
//	}
//	pages := cache.NewRedis[string](client, cache.StringMarshaler{}, cache.WithPrefix("hyraft"))
//
// Open pings the server and retries with a linear backoff. Healthcheck and
// Shutdown plug the client into the app's readiness checks and shutdown hooks.
package redis
