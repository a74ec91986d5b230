// Package events fans live updates out to connected dashboards over
// websockets. It replaces the one-shot polling the old screens did with an
// explicit subscribe/broadcast/unsubscribe cycle.
package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tasteline/restaurant-app/utils"
)

// Event types
const (
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventTableUpdate     = "table_update"
	EventPaymentPending  = "payment_pending"
	EventPaymentSuccess  = "payment_success"
	EventInventoryAlert  = "inventory_alert"
	EventDashboardUpdate = "dashboard_update"
	EventStaffNotif      = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks every subscribed dashboard connection and its role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// Subscribe registers a connection under a role (kitchen, staff, admin,
// delivery).
func Subscribe(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// Unsubscribe releases the connection and closes it.
func Unsubscribe(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast sends msg to every subscribed client.
func Broadcast(msg Message) {
	broadcast(msg, nil)
}

// BroadcastToRoles sends msg only to clients subscribed under one of the
// given roles.
func BroadcastToRoles(msg Message, roles ...string) {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	broadcast(msg, allowed)
}

// OrderCreated announces a freshly submitted order to the staff screens.
func OrderCreated(order interface{}) {
	Broadcast(Message{Event: EventOrderCreate, Data: order})
}

// OrderUpdated announces a status or payment change on an order.
func OrderUpdated(order interface{}) {
	Broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// TableUpdated announces a table status change.
func TableUpdated(table interface{}) {
	Broadcast(Message{Event: EventTableUpdate, Data: table})
}

// PaymentPending announces a newly opened payment.
func PaymentPending(payment interface{}) {
	BroadcastToRoles(Message{Event: EventPaymentPending, Data: payment}, "staff", "admin")
}

// PaymentSucceeded announces a confirmed payment.
func PaymentSucceeded(payment interface{}) {
	Broadcast(Message{Event: EventPaymentSuccess, Data: payment})
}

// InventoryAlert warns admin screens about items at or below minimum stock.
func InventoryAlert(items interface{}) {
	BroadcastToRoles(Message{Event: EventInventoryAlert, Data: items}, "admin", "staff")
}

// DashboardUpdated pushes recomputed stats to admin screens.
func DashboardUpdated(stats interface{}) {
	BroadcastToRoles(Message{Event: EventDashboardUpdate, Data: stats}, "admin")
}

// StaffNotification sends a free-text notice to every staff-side screen.
func StaffNotification(text string) {
	BroadcastToRoles(Message{Event: EventStaffNotif, Data: text}, "staff", "admin", "kitchen", "delivery")
}

func broadcast(msg Message, roles map[string]bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event %s: %v", msg.Event, err)
		return
	}

	for conn, role := range hub.clients {
		if roles != nil && !roles[role] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
		}
	}
}
