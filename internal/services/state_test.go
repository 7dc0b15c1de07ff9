package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLobbyState(t *testing.T) {
	f := newFixture(t)
	room, _ := f.rooms.Create("alice", 4, nil)
	f.mustJoin(t, room.Code, "Alice", "alice")
	f.mustJoin(t, room.Code, "Bob", "bob")

	state, err := f.state.Build(f.room(t, room.ID), "bob")
	require.NoError(t, err)

	assert.Equal(t, room.Code, state.Room.Code)
	assert.Equal(t, "lobby", state.Room.Status)
	assert.Nil(t, state.Game)
	require.Len(t, state.Players, 2)

	assert.Equal(t, "Alice", state.Players[0].Nickname)
	assert.True(t, state.Players[0].IsHost)
	assert.False(t, state.Players[0].IsMe)
	assert.True(t, state.Players[1].IsMe)
}

func TestBuildGameState(t *testing.T) {
	f := newFixture(t)
	room := startedGame(t, f, "alice", "bob")

	state, err := f.state.Build(f.room(t, room.ID), "alice")
	require.NoError(t, err)
	require.NotNil(t, state.Game)

	assert.Equal(t, 0, state.Game.QuestionIndex)
	assert.Equal(t, 10, state.Game.TotalQuestions)
	assert.Equal(t, 1, state.Game.Round)
	assert.Equal(t, "Player-alice", state.Game.CurrentTurnNickname)
	require.NotNil(t, state.Game.Question)
	assert.NotEmpty(t, state.Game.Question.Text)
	assert.Nil(t, state.Game.ChallengeDeadline)
}

func TestBuildRedactsPendingAnswers(t *testing.T) {
	f := newFixture(t)
	room := startedGame(t, f, "alice", "bob")
	_, err := f.games.SubmitAnswer(room.ID, "alice", "wrong guess")
	require.NoError(t, err)

	state, err := f.state.Build(f.room(t, room.ID), "bob")
	require.NoError(t, err)
	require.NotNil(t, state.Game)
	require.Len(t, state.Game.RecentAnswers, 1)

	entry := state.Game.RecentAnswers[0]
	assert.False(t, entry.Revealed)
	assert.Empty(t, entry.Text)
	assert.Nil(t, entry.Correct)
	assert.Zero(t, entry.Points)
	assert.NotNil(t, state.Game.ChallengeDeadline)

	// Nothing in the serialized snapshot may leak the submitted text or
	// the accepted answers.
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "wrong guess")
	assert.NotContains(t, string(raw), "answer-")
}

func TestBuildShowsResolvedAnswers(t *testing.T) {
	f := newFixture(t)
	room := startedGame(t, f, "alice", "bob")
	answer, err := f.games.SubmitAnswer(room.ID, "alice", "wrong guess")
	require.NoError(t, err)
	_, err = f.games.Challenge(room.ID, "bob", answer.AnswerID)
	require.NoError(t, err)

	state, err := f.state.Build(f.room(t, room.ID), "alice")
	require.NoError(t, err)
	require.NotNil(t, state.Game)
	require.Len(t, state.Game.RecentAnswers, 1)

	entry := state.Game.RecentAnswers[0]
	assert.True(t, entry.Revealed)
	assert.Equal(t, "wrong guess", entry.Text)
	require.NotNil(t, entry.Correct)
	assert.False(t, *entry.Correct)
	require.NotNil(t, entry.ChallengerID)
	assert.Nil(t, state.Game.ChallengeDeadline)
}

func TestBuildVersionTracksRoom(t *testing.T) {
	f := newFixture(t)
	room, _ := f.rooms.Create("alice", 4, nil)
	f.mustJoin(t, room.Code, "Alice", "alice")

	before, err := f.state.Build(f.room(t, room.ID), "alice")
	require.NoError(t, err)

	f.mustJoin(t, room.Code, "Bob", "bob")

	after, err := f.state.Build(f.room(t, room.ID), "alice")
	require.NoError(t, err)
	assert.Greater(t, after.Room.Version, before.Room.Version)
}
