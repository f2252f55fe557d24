package negotiation

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"destiny-backend/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

// Hub fans negotiation events out to connected users. All Notify methods are
// safe on a nil Hub.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
	uid  string
}

type Message struct {
	Type string      `json:"type"`
	UID  string      `json:"uid"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// publish enqueues a message for fan-out. Once the hub is shut down the
// message is dropped instead of wedging the calling handler goroutine.
func (h *Hub) publish(message Message) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.uid] = client

		case client := <-h.unregister:
			if _, ok := h.clients[client.uid]; ok {
				delete(h.clients, client.uid)
				close(client.send)
			}

		case message := <-h.broadcast:
			if client, ok := h.clients[message.UID]; ok {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client.uid)
				}
			}

		case <-h.done:
			for uid, client := range h.clients {
				close(client.send)
				delete(h.clients, uid)
			}
			return
		}
	}
}

func (h *Hub) Shutdown() {
	if h == nil {
		return
	}
	close(h.done)
}

// NotifyProposal tells the partner a proposal or counter-offer landed
func (h *Hub) NotifyProposal(toUID string, proposal *Proposal) {
	if h == nil {
		return
	}

	messageType := "proposal_received"
	if proposal.IsCounterOffer {
		messageType = "counter_offer_received"
	}

	h.publish(Message{Type: messageType, UID: toUID, Data: proposal})
}

// NotifyProposalAccepted tells the proposer their value was accepted
func (h *Hub) NotifyProposalAccepted(toUID string, proposal *Proposal) {
	if h == nil {
		return
	}

	h.publish(Message{Type: "proposal_accepted", UID: toUID, Data: proposal})
}

// NotifyMeetingConfirmed tells both participants the meeting is locked in
func (h *Hub) NotifyMeetingConfirmed(meeting *ConfirmedMeeting, uids ...string) {
	if h == nil {
		return
	}

	for _, uid := range uids {
		h.publish(Message{Type: "meeting_confirmed", UID: uid, Data: meeting})
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan Message, 256),
		uid:  uid,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteJSON(message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
