// Package client provides the orchestration layer between application code
// and an [ai.Provider]. A [Client] threads every call through an immutable
// middleware chain and, when an observer is configured, opens a client-level
// span around it.
//
// The primary entry point is [New], which accepts a provider and functional
// options such as [WithMiddleware] and [WithObserver].
package client
