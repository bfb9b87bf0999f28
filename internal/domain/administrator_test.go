package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdministrator(t *testing.T) {
	t.Parallel()

	t.Run("valid administrator", func(t *testing.T) {
		admin, err := NewAdministrator("Diop", "Awa", "a@x.com", "700000000", SexFeminine, "hash", nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, admin.ID)
		assert.Equal(t, RoleAdmin, admin.Role)
		assert.True(t, admin.IsAdmin())
		assert.False(t, admin.HasPhoto())
		assert.WithinDuration(t, time.Now().UTC(), admin.CreatedAt, 5*time.Second)
		assert.Equal(t, admin.CreatedAt, admin.UpdatedAt)
	})

	t.Run("missing hash", func(t *testing.T) {
		_, err := NewAdministrator("Diop", "Awa", "a@x.com", "700000000", SexFeminine, "", nil)
		assert.ErrorIs(t, err, ErrEmptyHashedPassword)
	})

	t.Run("invalid sex", func(t *testing.T) {
		_, err := NewAdministrator("Diop", "Awa", "a@x.com", "700000000", Sex("x"), "hash", nil)
		assert.ErrorIs(t, err, ErrInvalidSex)
	})
}

func TestParseSex(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"masculin", "feminin", "autre"} {
		got, err := ParseSex(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}

	_, err := ParseSex("Feminin")
	assert.ErrorIs(t, err, ErrInvalidSex)
}

func TestAdministratorJSONOmitsPassword(t *testing.T) {
	t.Parallel()

	photo := "photos/p.png"
	admin, err := NewAdministrator("Diop", "Awa", "a@x.com", "700000000", SexFeminine, "$2a$secret-hash", &photo)
	require.NoError(t, err)

	data, err := json.Marshal(admin)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "remember_token")
	assert.NotContains(t, string(data), "secret-hash")
	assert.Equal(t, "Diop", fields["nom"])
	assert.Equal(t, "Awa", fields["prenom"])
	assert.Equal(t, "feminin", fields["sexe"])
	assert.Equal(t, "photos/p.png", fields["photo"])
	assert.Equal(t, "admin", fields["role"])
}

func TestAccessTokenExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok := &AccessToken{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, tok.Expired(now))
	assert.True(t, tok.Expired(now.Add(time.Minute)))

	noExpiry := &AccessToken{}
	assert.False(t, noExpiry.Expired(now))
}
