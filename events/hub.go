package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tabletap/ordering-app/models"
)

// Event types pushed to staff/kitchen clients.
const (
	EventCartUpdate   = "cart_update"
	EventOrderCreated = "order_created"
	EventTableUpdate  = "table_update"
	EventStaffNotif   = "staff_notification"
)

type Message struct {
	Event    string      `json:"event"`
	TenantID uint        `json:"tenant_id"`
	Data     interface{} `json:"data"`
}

type client struct {
	role     string
	tenantID uint
}

// Hub holds every connected staff client. Broadcasts are scoped by tenant.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient adds a connection with its role and tenant scope.
func RegisterClient(conn *websocket.Conn, role string, tenantID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{role: role, tenantID: tenantID}
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastCartUpdate pushes a fresh cart summary to the tenant's clients.
func BroadcastCartUpdate(tenantID uint, summary interface{}) {
	broadcast(Message{Event: EventCartUpdate, TenantID: tenantID, Data: summary})
}

// BroadcastOrderCreated announces a checkout result.
func BroadcastOrderCreated(tenantID uint, order models.Order) {
	broadcast(Message{Event: EventOrderCreated, TenantID: tenantID, Data: order})
}

// BroadcastTableUpdate pushes a table status change.
func BroadcastTableUpdate(tenantID uint, table models.Table) {
	broadcast(Message{Event: EventTableUpdate, TenantID: tenantID, Data: table})
}

// BroadcastStaffNotification pushes a plain text notice to staff clients.
func BroadcastStaffNotification(tenantID uint, message string) {
	broadcast(Message{Event: EventStaffNotif, TenantID: tenantID, Data: message})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if cl.tenantID != msg.TenantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("error sending event to %s client: %v", cl.role, err)
		}
	}
}
