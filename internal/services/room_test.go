package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoom(t *testing.T) {
	f := newFixture(t)

	t.Run("creates a lobby room with a 6-char code", func(t *testing.T) {
		room, err := f.rooms.Create("session-host", 4, nil)
		require.NoError(t, err)

		assert.Equal(t, models.RoomStatusLobby, room.Status)
		assert.Equal(t, int64(0), room.StateVersion)
		assert.Equal(t, 4, room.MaxPlayers)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), room.Code)
		assert.True(t, room.ExpiresAt.After(time.Now()))
	})

	t.Run("rejects max players outside 2-10", func(t *testing.T) {
		_, err := f.rooms.Create("session-host", 1, nil)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = f.rooms.Create("session-host", 11, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("codes are unique among active rooms", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			room, err := f.rooms.Create("session-host", 4, nil)
			require.NoError(t, err)
			assert.False(t, seen[room.Code], "duplicate code %s", room.Code)
			seen[room.Code] = true
		}
	})
}

func TestJoinRoom(t *testing.T) {
	t.Run("creator joins as host, others do not", func(t *testing.T) {
		f := newFixture(t)
		room, err := f.rooms.Create("alice", 4, nil)
		require.NoError(t, err)

		res, err := f.rooms.Join(room.Code, "Alice", "alice")
		require.NoError(t, err)
		assert.True(t, res.Player.IsHost)
		assert.False(t, res.IsRejoin)

		res, err = f.rooms.Join(room.Code, "Bob", "bob")
		require.NoError(t, err)
		assert.False(t, res.Player.IsHost)
	})

	t.Run("join bumps the state version", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)

		_, err := f.rooms.Join(room.Code, "Alice", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.room(t, room.ID).StateVersion)

		_, err = f.rooms.Join(room.Code, "Bob", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.room(t, room.ID).StateVersion)
	})

	t.Run("rejoin with same session is idempotent", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)

		first, err := f.rooms.Join(room.Code, "Alice", "alice")
		require.NoError(t, err)

		second, err := f.rooms.Join(room.Code, "Alicia", "alice")
		require.NoError(t, err)
		assert.True(t, second.IsRejoin)
		assert.Equal(t, first.Player.ID, second.Player.ID)
		assert.Equal(t, "Alicia", second.Player.Nickname)

		players, _ := f.rooms.ListPlayers(room.ID)
		assert.Len(t, players, 1)
	})

	t.Run("rejoin with a new nickname bumps the version", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)

		_, err := f.rooms.Join(room.Code, "Alice", "alice")
		require.NoError(t, err)
		before := f.room(t, room.ID).StateVersion

		_, err = f.rooms.Join(room.Code, "Alicia", "alice")
		require.NoError(t, err)
		assert.Greater(t, f.room(t, room.ID).StateVersion, before)
	})

	t.Run("rejects join when room is full", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 2, nil)
		_, err := f.rooms.Join(room.Code, "Alice", "alice")
		require.NoError(t, err)
		_, err = f.rooms.Join(room.Code, "Bob", "bob")
		require.NoError(t, err)

		_, err = f.rooms.Join(room.Code, "Carol", "carol")
		assert.ErrorIs(t, err, ErrNotJoinable)
	})

	t.Run("rejects join once the room is playing", func(t *testing.T) {
		f := newFixture(t)
		seedQuestions(t, f.db, 12)
		room, _ := f.rooms.Create("alice", 4, nil)
		f.mustJoin(t, room.Code, "Alice", "alice")
		f.mustJoin(t, room.Code, "Bob", "bob")
		_, err := f.games.Start(room.ID, "alice", nil)
		require.NoError(t, err)

		_, err = f.rooms.Join(room.Code, "Carol", "carol")
		assert.ErrorIs(t, err, ErrNotJoinable)
	})

	t.Run("rejects unknown code", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.rooms.Join("ZZZZZZ", "Alice", "alice")
		assert.ErrorIs(t, err, ErrNotJoinable)
	})

	t.Run("rejects bad nickname", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)
		_, err := f.rooms.Join(room.Code, "   ", "alice")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestLeaveRoom(t *testing.T) {
	t.Run("leaving is rejected for non-members", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)
		f.mustJoin(t, room.Code, "Alice", "alice")

		err := f.rooms.Leave(room.ID, "stranger")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("host leaving promotes the earliest-joined player", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)
		f.mustJoin(t, room.Code, "Alice", "alice")
		bob := f.mustJoin(t, room.Code, "Bob", "bob")
		carol := f.mustJoin(t, room.Code, "Carol", "carol")

		require.NoError(t, f.rooms.Leave(room.ID, "alice"))

		assert.True(t, f.player(t, bob.Player.ID).IsHost)
		assert.False(t, f.player(t, carol.Player.ID).IsHost)
	})

	t.Run("exactly one host at all times", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)
		f.mustJoin(t, room.Code, "Alice", "alice")
		f.mustJoin(t, room.Code, "Bob", "bob")
		f.mustJoin(t, room.Code, "Carol", "carol")

		for _, leaver := range []string{"alice", "bob"} {
			require.NoError(t, f.rooms.Leave(room.ID, leaver))
			players, _ := f.rooms.ListPlayers(room.ID)
			hosts := 0
			for _, p := range players {
				if p.IsHost {
					hosts++
				}
			}
			assert.Equal(t, 1, hosts)
		}
	})

	t.Run("last player leaving deletes the room", func(t *testing.T) {
		f := newFixture(t)
		room, _ := f.rooms.Create("alice", 4, nil)
		f.mustJoin(t, room.Code, "Alice", "alice")

		require.NoError(t, f.rooms.Leave(room.ID, "alice"))

		_, err := f.rooms.Get(room.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRoomExpiry(t *testing.T) {
	f := newFixture(t)
	room, _ := f.rooms.Create("alice", 4, nil)
	f.mustJoin(t, room.Code, "Alice", "alice")

	past := time.Now().Add(-time.Minute)
	require.NoError(t, f.db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("expires_at", past).Error)

	_, err := f.rooms.Get(room.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The expired room was removed together with its players.
	var count int64
	f.db.Model(&models.Player{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestStateVersionMonotonic(t *testing.T) {
	f := newFixture(t)
	room, _ := f.rooms.Create("alice", 4, nil)

	last := int64(0)
	f.mustJoin(t, room.Code, "Alice", "alice")
	assert.Greater(t, f.room(t, room.ID).StateVersion, last)
	last = f.room(t, room.ID).StateVersion

	f.mustJoin(t, room.Code, "Bob", "bob")
	assert.Greater(t, f.room(t, room.ID).StateVersion, last)
	last = f.room(t, room.ID).StateVersion

	require.NoError(t, f.rooms.Leave(room.ID, "bob"))
	assert.Greater(t, f.room(t, room.ID).StateVersion, last)
}

func TestBumpVersionConflict(t *testing.T) {
	f := newFixture(t)
	room, _ := f.rooms.Create("alice", 4, nil)

	require.NoError(t, bumpVersion(f.db, room.ID, 0))
	assert.Equal(t, int64(1), f.room(t, room.ID).StateVersion)

	// A writer holding a stale version loses the swap.
	err := bumpVersion(f.db, room.ID, 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), f.room(t, room.ID).StateVersion)
}

func (f *fixture) mustJoin(t *testing.T, code, nickname, session string) *JoinResult {
	t.Helper()
	res, err := f.rooms.Join(code, nickname, session)
	require.NoError(t, err)
	return res
}
