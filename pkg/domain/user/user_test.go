package user_test

import (
	"testing"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMergeKeepsIdentity(t *testing.T) {
	id := uuid.New()
	u := user.New(id, "a@example.com", "Ada", "", "")
	created := u.CreatedAt
	time.Sleep(time.Millisecond)

	u.Merge(user.User{ID: uuid.New(), LastName: "Lovelace", Email: " b@example.com "})

	assert.Equal(t, id, u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "b@example.com", u.Email)
	assert.True(t, u.UpdatedAt.After(created))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", user.New(uuid.New(), "", "Ada", "Lovelace", "").DisplayName())
	assert.Equal(t, "a@example.com", user.New(uuid.New(), "a@example.com", "", "", "").DisplayName())
}
