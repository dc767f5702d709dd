// Package state tracks where the HTTP server is in its lifecycle.
package state

import "sync/atomic"

type ServerState int32

const (
	ServerStateStarting ServerState = iota
	ServerStateReady
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

func (s ServerState) String() string {
	switch s {
	case ServerStateStarting:
		return "starting"
	case ServerStateReady:
		return "ready"
	case ServerStateInGracePeriod:
		return "grace period"
	case ServerStateInCleanupPeriod:
		return "cleanup period"
	default:
		return "unknown"
	}
}

// Server is safe for concurrent use; handlers read it while the shutdown path writes it.
type Server struct {
	value atomic.Int32
}

func New() *Server {
	return &Server{}
}

func (s *Server) Set(state ServerState) {
	s.value.Store(int32(state))
}

func (s *Server) Get() ServerState {
	return ServerState(s.value.Load())
}

// Draining reports whether shutdown has begun.
func (s *Server) Draining() bool {
	return s.Get() >= ServerStateInGracePeriod
}
