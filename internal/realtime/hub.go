package realtime

import (
	"context"

	"github.com/rs/zerolog"
)

type joinRequest struct {
	client *Client
	room   string
}

type broadcast struct {
	room    string
	message []byte
}

// Hub owns the room registry. All membership mutation happens on the run
// loop goroutine; clients and the Redis bridge talk to it over channels.
//
// Rooms are joined unconditionally: band ids are not confidential and the
// HTTP side already authenticated the session, so this layer does no
// membership check of its own.
type Hub struct {
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]struct{}

	register   chan *Client
	unregister chan *Client
	joins      chan joinRequest
	leaves     chan joinRequest
	broadcasts chan broadcast

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		members:    make(map[*Client]map[string]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joins:      make(chan joinRequest),
		leaves:     make(chan joinRequest),
		broadcasts: make(chan broadcast, 64),
		logger:     logger.With().Str("component", "realtime_hub").Logger(),
	}
}

// Run processes registry events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.members {
				client.closeSend()
			}
			return
		case client := <-h.register:
			h.members[client] = make(map[string]struct{})
			h.logger.Debug().Str("client_id", client.ID).Msg("client connected")
		case client := <-h.unregister:
			h.dropClient(client)
		case req := <-h.joins:
			h.joinRoom(req.client, req.room)
		case req := <-h.leaves:
			h.leaveRoom(req.client, req.room)
		case b := <-h.broadcasts:
			for client := range h.rooms[b.room] {
				select {
				case client.send <- b.message:
				default:
					// Slow consumer; drop it rather than block the loop.
					h.dropClient(client)
				}
			}
		}
	}
}

// Broadcast fans a raw message out to every client in the room.
func (h *Hub) Broadcast(room string, message []byte) {
	h.broadcasts <- broadcast{room: room, message: message}
}

func (h *Hub) joinRoom(client *Client, room string) {
	rooms, ok := h.members[client]
	if !ok {
		return // already unregistered
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	rooms[room] = struct{}{}
	h.logger.Info().Str("client_id", client.ID).Str("room", room).Msg("client joined room")
}

func (h *Hub) leaveRoom(client *Client, room string) {
	rooms, ok := h.members[client]
	if !ok {
		return
	}
	delete(rooms, room)
	if members := h.rooms[room]; members != nil {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.logger.Info().Str("client_id", client.ID).Str("room", room).Msg("client left room")
}

func (h *Hub) dropClient(client *Client) {
	rooms, ok := h.members[client]
	if !ok {
		return
	}
	for room := range rooms {
		if members := h.rooms[room]; members != nil {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	delete(h.members, client)
	client.closeSend()
	h.logger.Debug().Str("client_id", client.ID).Msg("client disconnected")
}
