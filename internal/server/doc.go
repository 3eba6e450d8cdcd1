// Package server wires and runs the application's HTTP server and background
// workers.
//
// It orchestrates their lifecycles: startup, signal handling and graceful
// shutdown once SIGTERM, SIGINT or SIGQUIT is received.
package server
