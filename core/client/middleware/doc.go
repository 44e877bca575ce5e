// Package middleware provides built-in middleware for [client.Client]. Each
// middleware is constructed via a New* function that returns a
// [client.MiddlewareConfig] ready to be passed to [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTimeoutMiddleware]: caps every call with a deadline via
//     context.WithTimeout. The gateway applies its own per-call timeout as
//     well; whichever expires first wins.
//
//   - [NewLoggingMiddleware]: emits structured slog entries before and after
//     every call, with three verbosity levels (Minimal, Standard, Verbose).
//
// # Usage
//
//	c, err := client.New(gw,
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first. In the example above a request
// travels Timeout → Logging → Provider and the response travels back in
// reverse.
package middleware
