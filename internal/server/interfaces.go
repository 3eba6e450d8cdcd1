package server

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until a stop signal arrives and every component has
// stopped; Shutdown stops everything from another goroutine.
type Server interface {
	// RunServer starts serving requests and the background workers and
	// blocks until they stop.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
