// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"layout": comp.Healthcheck,
//		"redis":  redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// Probes answer "OK" or "Service Unavailable" in plain text; JSON is
// returned for Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
//
// Checks run concurrently under one timeout. A check that runs out of time
// reports ErrCheckTimeout.
package health
