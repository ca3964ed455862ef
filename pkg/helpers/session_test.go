package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssueAndVerify(t *testing.T) {
	t.Parallel()
	m := NewSessionManager([]string{"secret-a"}, "session", "localhost", false, time.Hour)

	token, err := m.Issue("jane-doe")
	require.NoError(t, err)

	handle, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", handle)
}

func TestSessionSurvivesSecretRotation(t *testing.T) {
	t.Parallel()
	old := NewSessionManager([]string{"secret-old"}, "session", "localhost", false, time.Hour)
	token, err := old.Issue("jane-doe")
	require.NoError(t, err)

	// Rotation prepends the new secret; outstanding tokens still verify.
	rotated := NewSessionManager([]string{"secret-new", "secret-old"}, "session", "localhost", false, time.Hour)
	handle, err := rotated.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", handle)

	// A manager that dropped the old secret rejects the token.
	dropped := NewSessionManager([]string{"secret-new"}, "session", "localhost", false, time.Hour)
	_, err = dropped.Verify(token)
	assert.Error(t, err)
}

func TestSessionSignsWithNewestSecret(t *testing.T) {
	t.Parallel()
	rotated := NewSessionManager([]string{"secret-new", "secret-old"}, "session", "localhost", false, time.Hour)
	token, err := rotated.Issue("jane-doe")
	require.NoError(t, err)

	newest := NewSessionManager([]string{"secret-new"}, "session", "localhost", false, time.Hour)
	handle, err := newest.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", handle)
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	m := NewSessionManager([]string{"secret-a"}, "session", "localhost", false, -time.Minute)

	token, err := m.Issue("jane-doe")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestSessionRejectsGarbage(t *testing.T) {
	t.Parallel()
	m := NewSessionManager([]string{"secret-a"}, "session", "localhost", false, time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := m.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestIssueWithoutSecretsFails(t *testing.T) {
	t.Parallel()
	m := NewSessionManager(nil, "session", "localhost", false, time.Hour)

	_, err := m.Issue("jane-doe")
	assert.Error(t, err)
}
