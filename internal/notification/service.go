package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rktiwari00/woocart/internal/storage"
)

const (
	notificationsKey = "notifications"
	settingsKey      = "notificationSettings"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	OrderID   int64     `json:"orderId,omitempty"`
	ProductID int64     `json:"productId,omitempty"`
	Link      string    `json:"link,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Settings gate which notification types get recorded at all.
type Settings struct {
	OrderUpdates bool `json:"orderUpdates"`
	Promotions   bool `json:"promotions"`
	NewProducts  bool `json:"newProducts"`
	PushEnabled  bool `json:"pushEnabled"`
}

func defaultSettings() Settings {
	return Settings{
		OrderUpdates: true,
		Promotions:   true,
		NewProducts:  false,
		PushEnabled:  false,
	}
}

// Service keeps the local notification feed, newest first, persisted
// the same best-effort way the cart is.
type Service struct {
	store storage.Store

	mu            sync.Mutex
	notifications []Notification
	settings      Settings
}

func NewService(store storage.Store) *Service {
	return &Service{
		store:         store,
		notifications: []Notification{},
		settings:      defaultSettings(),
	}
}

// Hydrate loads the persisted feed and settings at startup. Missing or
// corrupt blobs leave the defaults in place.
func (s *Service) Hydrate(ctx context.Context) {
	if raw, err := s.store.Get(ctx, notificationsKey); err == nil {
		var notifications []Notification
		if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
			log.Printf("error parsing saved notifications: %v", err)
		} else if notifications != nil {
			s.mu.Lock()
			s.notifications = notifications
			s.mu.Unlock()
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("error loading notifications: %v", err)
	}

	if raw, err := s.store.Get(ctx, settingsKey); err == nil {
		var settings Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			log.Printf("error parsing notification settings: %v", err)
		} else {
			s.mu.Lock()
			s.settings = settings
			s.mu.Unlock()
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("error loading notification settings: %v", err)
	}
}

// Add prepends an unread notification with a fresh ID and timestamp.
func (s *Service) Add(n Notification) Notification {
	n.ID = uuid.NewString()
	n.Timestamp = time.Now()
	n.Read = false

	s.mu.Lock()
	s.notifications = append([]Notification{n}, s.notifications...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(notificationsKey, snapshot)
	return n
}

func (s *Service) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Service) MarkAsRead(id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(notificationsKey, snapshot)
}

func (s *Service) MarkAllAsRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(notificationsKey, snapshot)
}

func (s *Service) Delete(id string) {
	s.mu.Lock()
	next := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ID != id {
			next = append(next, n)
		}
	}
	s.notifications = next
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(notificationsKey, snapshot)
}

func (s *Service) ClearAll() {
	s.mu.Lock()
	s.notifications = []Notification{}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(notificationsKey, snapshot)
}

func (s *Service) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Service) UpdateSettings(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		log.Printf("error saving notification settings: %v", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.store.Set(ctx, settingsKey, string(data)); err != nil {
			log.Printf("error saving notification settings: %v", err)
		}
	}()
}

var orderStatusMessages = map[string]string{
	"pending":    "Your order has been received and is being processed.",
	"processing": "Your order is being prepared for shipment.",
	"shipped":    "Your order has been shipped and is on its way!",
	"delivered":  "Your order has been delivered successfully.",
	"cancelled":  "Your order has been cancelled.",
}

// SendOrderNotification records an order-status update, unless order
// updates are turned off in settings.
func (s *Service) SendOrderNotification(orderID int64, status string) {
	if !s.Settings().OrderUpdates {
		return
	}

	body, ok := orderStatusMessages[status]
	if !ok {
		body = "Your order status has been updated."
	}

	s.Add(Notification{
		Title:   fmt.Sprintf("Order #%d %s", orderID, status),
		Body:    body,
		Type:    "order",
		OrderID: orderID,
	})
}

func (s *Service) SendPromotionalNotification(title, body, link string) {
	if !s.Settings().Promotions {
		return
	}

	s.Add(Notification{
		Title: title,
		Body:  body,
		Type:  "promotion",
		Link:  link,
	})
}

func (s *Service) SendNewProductNotification(productName string, productID int64) {
	if !s.Settings().NewProducts {
		return
	}

	s.Add(Notification{
		Title:     "New Product Available",
		Body:      fmt.Sprintf("Check out our new product: %s", productName),
		Type:      "product",
		ProductID: productID,
	})
}

func (s *Service) snapshotLocked() []Notification {
	snapshot := make([]Notification, len(s.notifications))
	copy(snapshot, s.notifications)
	return snapshot
}

func (s *Service) persist(key string, notifications []Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		data, err := json.Marshal(notifications)
		if err != nil {
			log.Printf("error saving notifications: %v", err)
			return
		}
		if err := s.store.Set(ctx, key, string(data)); err != nil {
			log.Printf("error saving notifications: %v", err)
		}
	}()
}
