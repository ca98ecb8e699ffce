package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/handlers/dto"
	"github.com/thereayou/talkie/internal/middleware"
)

type ChatHandler struct {
	db *database.Database
}

func NewChatHandler(db *database.Database) *ChatHandler {
	return &ChatHandler{db: db}
}

// CreatePrivateChat создает приватный чат с пользователем по email.
// Если чат для этой пары уже есть, возвращается он же.
func (h *ChatHandler) CreatePrivateChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreatePrivateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secondUser, err := h.db.FindUserByEmail(req.User2Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if secondUser.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you can't create chat with yourself"})
		return
	}

	chat, conversation, err := h.db.CreatePrivateChat(userID, secondUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create private chat"})
		return
	}

	c.JSON(http.StatusOK, dto.ChatCreatedResponse{
		ChatID:         chat.ID,
		ConversationID: conversation.ID,
	})
}

// CreateChatRoom создает публичный чат с первым диалогом
func (h *ChatHandler) CreateChatRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateChatRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, conversation, err := h.db.CreatePublicChat(req.RoomName, userID)
	if err != nil {
		if errors.Is(err, database.ErrChatNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat name already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
		return
	}

	c.JSON(http.StatusCreated, dto.ConversationCreatedResponse{
		RoomID:         chat.ID,
		ConversationID: conversation.ID,
	})
}

// JoinChat добавляет текущего пользователя в публичный чат
func (h *ChatHandler) JoinChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	if err := h.db.JoinPublicChat(chatID, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		case errors.Is(err, database.ErrAlreadyMember):
			c.JSON(http.StatusBadRequest, gin.H{"error": "you are already a member of this room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join chat"})
		}
		return
	}

	c.Status(http.StatusOK)
}

// CreateConversation создает дополнительный диалог в публичном чате.
// Доступно только участникам чата.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	member, err := h.db.IsPublicChatMember(chatID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check membership"})
		return
	}
	if !member {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you are not a member of this room"})
		return
	}

	conversation, err := h.db.AddConversation(chatID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create conversation"})
		return
	}

	c.JSON(http.StatusCreated, dto.ConversationCreatedResponse{
		RoomID:         chatID,
		ConversationID: conversation.ID,
	})
}

// DeleteChat удаляет публичный чат со всеми диалогами. Только для владельца.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	chat, err := h.db.GetPublicChat(chatID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}

	if chat.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only chat owner can delete chat"})
		return
	}

	if err := h.db.DeletePublicChat(chatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "chat deleted successfully"})
}
