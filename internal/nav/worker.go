package nav

import (
	"context"
	"fmt"
	"log/slog"
)

// Request is a message accepted by a pathfinding session.
type Request interface{ isRequest() }

// InitRequest creates the session's grid and pathfinder from a row-major
// walkability bitmap.
type InitRequest struct {
	Width       int
	Height      int
	WalkableMap []bool
}

// FindPathRequest asks for a path. ID correlates the eventual PathResult;
// Smooth additionally collapses waypoints a straight walkable line can skip.
type FindPathRequest struct {
	ID     int
	StartX int
	StartY int
	EndX   int
	EndY   int
	Smooth bool
}

// UpdateMapRequest replaces the session's whole walkability bitmap.
type UpdateMapRequest struct {
	WalkableMap []bool
}

// UpdateTileRequest toggles a single cell.
type UpdateTileRequest struct {
	X        int
	Y        int
	Walkable bool
}

func (InitRequest) isRequest()       {}
func (FindPathRequest) isRequest()   {}
func (UpdateMapRequest) isRequest()  {}
func (UpdateTileRequest) isRequest() {}

// Response is a message emitted by a pathfinding session.
type Response interface{ isResponse() }

// Initialized confirms a successful InitRequest.
type Initialized struct{}

// PathResult carries the outcome of one FindPathRequest. Path is nil when
// the goal is unreachable.
type PathResult struct {
	ID    int
	Path  []Point
	Start Point
	End   Point
}

// MapUpdated acknowledges an UpdateMapRequest.
type MapUpdated struct{}

// TileUpdated acknowledges an UpdateTileRequest, echoing the cell.
type TileUpdated struct {
	X        int
	Y        int
	Walkable bool
}

// SessionError reports that the session could not start from an
// InitRequest. The session stays uninitialized and the host should retry or
// recreate it.
type SessionError struct {
	Message string
}

func (Initialized) isResponse()  {}
func (PathResult) isResponse()   {}
func (MapUpdated) isResponse()   {}
func (TileUpdated) isResponse()  {}
func (SessionError) isResponse() {}

// Session serves pathfinding requests one at a time in strict receipt
// order. It owns its grid and pathfinder exclusively; callers mirror world
// changes in through UpdateMapRequest and UpdateTileRequest. A session
// starts uninitialized and becomes ready after a valid InitRequest.
//
// There is no cancellation: a submitted search runs to completion and
// delays everything queued behind it. Callers wanting timeouts drop late
// results by ID instead.
type Session struct {
	requests  chan Request
	responses chan Response
	grid      *Grid
	pf        *Pathfinder
}

// NewSession creates a session whose request and response queues hold
// buffer messages each.
func NewSession(buffer int) *Session {
	return &Session{
		requests:  make(chan Request, buffer),
		responses: make(chan Response, buffer),
	}
}

// Submit queues a request. It blocks while the queue is full; ctx cancels
// the wait.
func (s *Session) Submit(ctx context.Context, req Request) error {
	select {
	case s.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Responses returns the channel session replies arrive on. Responses to
// findPath requests arrive in completion order; correlate by ID.
func (s *Session) Responses() <-chan Response {
	return s.responses
}

// Start runs the serve loop (blocks until context is canceled).
func (s *Session) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.requests:
			resp := s.handle(req)
			select {
			case s.responses <- resp:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *Session) handle(req Request) Response {
	switch r := req.(type) {
	case InitRequest:
		grid, err := NewGrid(r.Width, r.Height, r.WalkableMap)
		if err != nil {
			slog.Error("session init failed", "error", err)
			return SessionError{Message: err.Error()}
		}
		s.grid = grid
		s.pf = NewPathfinder(grid)
		return Initialized{}

	case FindPathRequest:
		start := Point{X: r.StartX, Y: r.StartY}
		end := Point{X: r.EndX, Y: r.EndY}
		if s.pf == nil {
			slog.Warn("findPath before init", "id", r.ID)
			return PathResult{ID: r.ID, Start: start, End: end}
		}
		path := s.pf.FindPath(r.StartX, r.StartY, r.EndX, r.EndY)
		if r.Smooth && len(path) > 2 {
			path = Smooth(s.grid, path)
		}
		return PathResult{ID: r.ID, Path: path, Start: start, End: end}

	case UpdateMapRequest:
		if s.grid == nil {
			slog.Warn("updateMap before init")
			return MapUpdated{}
		}
		if err := s.grid.Replace(r.WalkableMap); err != nil {
			slog.Warn("ignoring map update", "error", err)
		}
		return MapUpdated{}

	case UpdateTileRequest:
		if s.grid != nil {
			s.grid.SetWalkable(r.X, r.Y, r.Walkable)
		}
		return TileUpdated{X: r.X, Y: r.Y, Walkable: r.Walkable}

	default:
		return SessionError{Message: fmt.Sprintf("unhandled request type %T", req)}
	}
}
