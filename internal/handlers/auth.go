package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/handlers/dto"
	"github.com/thereayou/talkie/internal/models"
	"github.com/thereayou/talkie/internal/notify"
	"github.com/thereayou/talkie/internal/services"
	"github.com/thereayou/talkie/pkg/auth"
)

const refreshCookie = "refresh"

type AuthHandler struct {
	db           *database.Database
	jwtManager   *auth.JWTManager
	blacklist    services.TokenBlacklist
	notifier     notify.Notifier
	mailTokenTTL time.Duration
	refreshTTL   time.Duration
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, blacklist services.TokenBlacklist,
	notifier notify.Notifier, mailTokenTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		db:           db,
		jwtManager:   jwtMgr,
		blacklist:    blacklist,
		notifier:     notifier,
		mailTokenTTL: mailTokenTTL,
		refreshTTL:   refreshTTL,
	}
}

// Register создает неактивного пользователя и ставит письмо
// с токеном верификации в очередь
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     false,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateUser(user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email has already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	verifyToken, err := h.jwtManager.GenerateWithTTL(user.ID.String(), h.mailTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	h.notifier.Notify(notify.MailEvent{
		Email: user.Email,
		Token: verifyToken,
		Kind:  notify.KindVerify,
	})

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

// Verify активирует пользователя по токену из письма
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	claims, err := h.jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.db.ActivateUser(userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not activate user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Successfully activated"})
}

// Login выдаёт access токен и refresh токен в httponly cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is not activated"})
		return
	}

	accessToken, err := h.jwtManager.GenerateAccess(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	refreshToken, err := h.jwtManager.GenerateRefresh(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	h.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

// Refresh обменивает refresh cookie на новую пару токенов
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
		return
	}

	claims, err := h.jwtManager.Verify(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	accessToken, err := h.jwtManager.GenerateAccess(claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	newRefresh, err := h.jwtManager.GenerateRefresh(claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	h.setRefreshCookie(c, newRefresh)
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

// Logout ставит токен в черный список до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	if ttl > 0 {
		if err := h.blacklist.Add(c.Request.Context(), rawToken, ttl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke token"})
			return
		}
	}

	c.Status(http.StatusOK)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookie, token, int(h.refreshTTL.Seconds()), "/", "", false, true)
}
