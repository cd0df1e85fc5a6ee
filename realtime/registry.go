package realtime

import "sync"

// Conn is one live client transport. Emit must be safe for concurrent
// use and must never block the caller; a slow consumer drops messages
// rather than stalling the dispatch loop.
type Conn interface {
	ID() string
	Emit(msg ServerMessage)
	Close()
}

type Set map[string]struct{}

type session struct {
	conn          Conn
	authenticated bool
	userID        string
	email         string
	rooms         Set
}

// Registry is the process-wide table of live connections: their auth
// state and the room membership in both directions. It is the only
// shared mutable state of the realtime layer; every operation takes the
// lock, so handlers that resumed after awaiting a membership query see
// a consistent view. Operations on an unknown connection id are
// defensive no-ops because a client may disconnect while its handler is
// still in flight.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*session // connection id -> session
	roomMembers map[string]Set      // room -> connection ids
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[string]*session),
		roomMembers: make(map[string]Set),
	}
}

// Register adds a new, unauthenticated connection.
func (r *Registry) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[conn.ID()] = &session{conn: conn, rooms: make(Set)}
}

// Authenticate marks the connection authenticated. Calling it again
// simply overwrites the identity (token refresh). Returns false if the
// connection is no longer registered.
func (r *Registry) Authenticate(connID, userID, email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.authenticated = true
	s.userID = userID
	s.email = email
	return true
}

// Identity returns the authenticated user behind a connection; ok is
// false for unknown or not-yet-authenticated connections.
func (r *Registry) Identity(connID string) (userID, email string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, exists := r.sessions[connID]
	if !exists || !s.authenticated {
		return "", "", false
	}
	return s.userID, s.email, true
}

// Join adds the connection to the room's member set and the room to the
// connection's joined set. Already joined is a no-op; an unregistered
// connection returns false and mutates nothing.
func (r *Registry) Join(connID, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.rooms[room] = struct{}{}

	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(Set)
	}
	r.roomMembers[room][connID] = struct{}{}
	return true
}

// Leave is the inverse of Join; not joined is a no-op. An emptied room
// is removed entirely so the map never accumulates dead entries.
func (r *Registry) Leave(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[connID]; ok {
		delete(s.rooms, room)
	}
	r.removeFromRoom(connID, room)
}

func (r *Registry) removeFromRoom(connID, room string) {
	members, ok := r.roomMembers[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.roomMembers, room)
	}
}

// connOf returns the transport behind a connection id, nil if the
// connection is gone. Used for targeted emits (acknowledgments and
// errors go to the requesting connection only).
func (r *Registry) connOf(connID string) Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[connID]
	if !ok {
		return nil
	}
	return s.conn
}

// RoomsOf returns the rooms a connection is currently joined to.
func (r *Registry) RoomsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[connID]
	if !ok {
		return nil
	}
	rooms := make([]string, 0, len(s.rooms))
	for room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// MembersOf resolves the connections currently joined to a room.
// Returns nil for an unknown or empty room.
func (r *Registry) MembersOf(room string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.roomMembers[room]
	if !ok {
		return nil
	}
	conns := make([]Conn, 0, len(members))
	for connID := range members {
		if s, exists := r.sessions[connID]; exists {
			conns = append(conns, s.conn)
		}
	}
	return conns
}

// Unregister removes the connection from every room it was in, then
// deletes it. It reports the identity so the caller can emit the
// offline notification, which is due only for authenticated sessions.
func (r *Registry) Unregister(connID string) (userID string, wasAuthenticated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[connID]
	if !ok {
		return "", false
	}
	for room := range s.rooms {
		r.removeFromRoom(connID, room)
	}
	delete(r.sessions, connID)
	return s.userID, s.authenticated
}
