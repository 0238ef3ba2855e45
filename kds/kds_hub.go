package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type StatusUpdate struct {
	Order          models.Order       `json:"order"`
	PreviousStatus models.OrderStatus `json:"previousStatus"`
}

// client is one websocket connection. An empty orderID means the client
// watches the whole restaurant (the kitchen screen); otherwise it only gets
// updates of that order (the customer status page).
type client struct {
	conn         *websocket.Conn
	restaurantID uint
	orderID      string
	send         chan []byte
}

// Hub fans committed order events out to websocket clients. Publishing never
// blocks: a client whose buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Serve registers conn and blocks until the peer goes away.
func (h *Hub) Serve(conn *websocket.Conn, restaurantID uint, orderID string) {
	cl := &client{
		conn:         conn,
		restaurantID: restaurantID,
		orderID:      orderID,
		send:         make(chan []byte, sendBuffer),
	}
	h.register(cl)

	go cl.writePump()
	cl.readPump()

	h.unregister(cl)
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) OrderCreated(order models.Order) {
	h.publish(order.RestaurantID, order.ID, false, Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

func (h *Hub) OrderStatusChanged(order models.Order, previous models.OrderStatus) {
	h.publish(order.RestaurantID, order.ID, true, Message{
		Event: EventOrderStatusUpdated,
		Data:  StatusUpdate{Order: order, PreviousStatus: previous},
	})
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurant_id": cl.restaurantID,
		"order_id":      cl.orderID,
	}).Debug("Websocket client connected")
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

func (h *Hub) publish(restaurantID uint, orderID string, toOrderWatchers bool, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling %s event: %v", msg.Event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for cl := range h.clients {
		if cl.restaurantID != restaurantID {
			continue
		}
		if cl.orderID != "" && (!toOrderWatchers || cl.orderID != orderID) {
			continue
		}
		select {
		case cl.send <- data:
			sent++
		default:
			delete(h.clients, cl)
			close(cl.send)
			utils.InfoLogger.WithField("restaurant_id", restaurantID).Warn("Dropped slow websocket client")
		}
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":    msg.Event,
		"order_id": orderID,
		"clients":  sent,
	}).Debug("Broadcast order event")
}

// readPump discards incoming messages; it only exists to notice the peer
// closing and to handle pongs.
func (cl *client) readPump() {
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
