package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNormalizePair(t *testing.T) {
	req := require.New(t)

	u1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	u2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	a, b := NormalizePair(u1, u2)
	req.Equal(u1, a)
	req.Equal(u2, b)

	// Порядок аргументов не влияет на результат
	a, b = NormalizePair(u2, u1)
	req.Equal(u1, a)
	req.Equal(u2, b)
}

func TestPrivateChat_HasMember(t *testing.T) {
	req := require.New(t)

	u1 := uuid.New()
	u2 := uuid.New()
	chat := PrivateChat{UserAID: u1, UserBID: u2}

	req.True(chat.HasMember(u1))
	req.True(chat.HasMember(u2))
	req.False(chat.HasMember(uuid.New()))
}
