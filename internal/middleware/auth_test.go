package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/talkie/internal/mocks"
	"github.com/thereayou/talkie/internal/models"
	"github.com/thereayou/talkie/internal/services"
	"github.com/thereayou/talkie/pkg/auth"
	"go.uber.org/mock/gomock"
)

func newAuthFixture(t *testing.T) (*services.IdentityResolver, *mocks.MockUserStore, *mocks.MockTokenBlacklist, *auth.JWTManager) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserStore(ctrl)
	blacklist := mocks.NewMockTokenBlacklist(ctrl)
	tokens := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	return services.NewIdentityResolver(tokens, users, blacklist), users, blacklist, tokens
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		userID := c.MustGet(UserIDKey).(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("should pass a valid bearer token through", func(t *testing.T) {
		req := require.New(t)
		resolver, users, blacklist, tokens := newAuthFixture(t)

		userID := uuid.New()
		token, err := tokens.GenerateAccess(userID.String())
		req.NoError(err)

		blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)
		users.EXPECT().GetUser(userID).Return(&models.User{ID: userID, Email: "u@example.com"}, nil)

		r := protectedRouter(AuthMiddleware(resolver))
		w := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, request)

		req.Equal(http.StatusOK, w.Code)
	})

	t.Run("should return 401 without a token", func(t *testing.T) {
		req := require.New(t)
		resolver, _, _, _ := newAuthFixture(t)

		r := protectedRouter(AuthMiddleware(resolver))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should return 401 for a blacklisted token", func(t *testing.T) {
		req := require.New(t)
		resolver, _, blacklist, tokens := newAuthFixture(t)

		token, err := tokens.GenerateAccess(uuid.New().String())
		req.NoError(err)
		blacklist.EXPECT().Contains(gomock.Any(), token).Return(true, nil)

		r := protectedRouter(AuthMiddleware(resolver))
		w := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, request)

		req.Equal(http.StatusUnauthorized, w.Code)
	})
}

func TestWSAuthMiddleware(t *testing.T) {
	t.Run("should accept a token from the query string", func(t *testing.T) {
		req := require.New(t)
		resolver, users, blacklist, tokens := newAuthFixture(t)

		userID := uuid.New()
		token, err := tokens.GenerateAccess(userID.String())
		req.NoError(err)

		blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)
		users.EXPECT().GetUser(userID).Return(&models.User{ID: userID, Email: "u@example.com"}, nil)

		r := protectedRouter(WSAuthMiddleware(resolver))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))

		req.Equal(http.StatusOK, w.Code)
	})

	t.Run("should reject the upgrade without a token", func(t *testing.T) {
		req := require.New(t)
		resolver, _, _, _ := newAuthFixture(t)

		r := protectedRouter(WSAuthMiddleware(resolver))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		req.Equal(http.StatusUnauthorized, w.Code)
	})
}
