package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub владеет всеми живыми соединениями, их сессиями и broadcast-группами
// комнат. Мутации идут только под одним mutex, поэтому гонка leave_room и
// disconnect не оставляет висячих членств.
type Hub struct {
	sessions *SessionRegistry

	clients map[uuid.UUID]*Client

	// Соединения в комнатах, ключом служит conversation id
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		sessions:   NewSessionRegistry(),
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.closeSend()
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// Register регистрирует нового клиента.
// После остановки hub не блокируется, клиент просто не регистрируется.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister отменяет регистрацию клиента.
// После остановки hub очереди уже закрыты, блокироваться не на чем.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	h.sessions.Register(client.ID, client.User)

	log.Printf("Client registered: %s (User: %s)", client.ID, client.User.ID)
}

// unregisterClient убирает соединение из всех комнат и снимает сессию.
// Идемпотентен: повторный unregister того же клиента ничего не делает.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for conversationID := range client.Rooms {
		h.removeFromRoomUnsafe(client, conversationID)
	}

	h.sessions.Unregister(client.ID)
	delete(h.clients, client.ID)
	client.closeSend()

	log.Printf("Client unregistered: %s (User: %s)", client.ID, client.User.ID)
}

// JoinRoom добавляет соединение в broadcast-группу диалога.
// Повторный вход в ту же комнату считается успехом.
func (h *Hub) JoinRoom(client *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[conversationID]; !ok {
		h.rooms[conversationID] = make(map[uuid.UUID]*Client)
	}

	h.rooms[conversationID][client.ID] = client
	client.mu.Lock()
	client.Rooms[conversationID] = true
	client.mu.Unlock()

	log.Printf("Client %s joined room %s", client.ID, conversationID)
}

// LeaveRoom удаляет соединение из комнаты, no-op если его там нет
func (h *Hub) LeaveRoom(client *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, conversationID)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, conversationID uuid.UUID) {
	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	if _, ok := room[client.ID]; !ok {
		return
	}

	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, conversationID)
	client.mu.Unlock()

	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}

// InRoom проверяет текущее членство соединения в комнате по состоянию hub,
// а не клиента: членство могло сняться конкурентным disconnect
func (h *Hub) InRoom(clientID, conversationID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[conversationID]
	if !ok {
		return false
	}
	_, ok = room[clientID]
	return ok
}

// SendToRoom отправляет событие всем соединениям в комнате, включая отправителя.
// Переполненная очередь одного получателя не мешает остальным.
func (h *Hub) SendToRoom(conversationID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[conversationID]; ok {
		for _, client := range room {
			if err := client.trySend(message); err != nil {
				log.Printf("Dropping message for client %s: %v", client.ID, err)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	data, err := marshalEvent(&event)
	if err != nil {
		return
	}

	for _, client := range h.clients {
		_ = client.trySend(data)
	}
}

// RoomClients возвращает пользователей, чьи соединения сейчас в комнате
func (h *Hub) RoomClients(conversationID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userSet := make(map[uuid.UUID]bool)
	if room, ok := h.rooms[conversationID]; ok {
		for _, client := range room {
			userSet[client.User.ID] = true
		}
	}

	users := make([]uuid.UUID, 0, len(userSet))
	for userID := range userSet {
		users = append(users, userID)
	}
	return users
}
