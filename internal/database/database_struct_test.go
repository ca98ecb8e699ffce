package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAppendLock(t *testing.T) {
	req := require.New(t)
	d := &Database{}

	// Один и тот же диалог всегда попадает на одну и ту же полосу
	id := uuid.New()
	req.Same(d.appendLock(id), d.appendLock(id))

	other := id
	other[0] = id[0] + 1
	req.NotSame(d.appendLock(id), d.appendLock(other))
}
