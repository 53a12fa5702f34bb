package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/session"
)

func TestStaticCredentials(t *testing.T) {
	tests := map[string]struct {
		token    session.Static
		expToken string
		expOK    bool
	}{
		"Non empty token is a session":  {token: session.Static("tkn-123"), expToken: "tkn-123", expOK: true},
		"Empty token means no session":  {token: session.Static(""), expToken: "", expOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			token, ok := tt.token.Token()
			assert.Equal(t, tt.expToken, token)
			assert.Equal(t, tt.expOK, ok)
		})
	}
}

func TestFileCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	creds, err := session.NewFileCredentials(session.FileCredentialsConfig{
		Path:   path,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	defer creds.Close()

	// No file yet, no session.
	_, ok := creds.Token()
	assert.False(t, ok)

	// Token file appears, session becomes active.
	require.NoError(t, os.WriteFile(path, []byte("tkn-abc\n"), 0600))
	require.Eventually(t, func() bool {
		token, ok := creds.Token()
		return ok && token == "tkn-abc"
	}, 2*time.Second, 10*time.Millisecond)

	// Token file removed, session disappears.
	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, ok := creds.Token()
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileCredentialsExistingToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("tkn-existing"), 0600))

	creds, err := session.NewFileCredentials(session.FileCredentialsConfig{Path: path})
	require.NoError(t, err)
	defer creds.Close()

	token, ok := creds.Token()
	assert.True(t, ok)
	assert.Equal(t, "tkn-existing", token)
}
