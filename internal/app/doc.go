// Package app wires configuration, logging, services and the chi router
// into a runnable HTTP application with graceful shutdown.
package app
