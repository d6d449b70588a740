// Package middlewares provides HTTP middleware for hyraft applications.
//
// Every middleware has the chi signature func(http.Handler) http.Handler and
// plugs into hyraft.WithMiddleware or any chi router:
//
//	app := hyraft.New(
//	    hyraft.WithLogger(log),
//	    hyraft.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	        middlewares.Logging(log),
//	        middlewares.CORS(middlewares.WithAllowOrigins("http://localhost:1091")),
//	    ),
//	)
//
// Add RequestIDExtractor to the logger so every record written while
// serving a request carries its id:
//
//	log, _ := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
package middlewares
