package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionString(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    string
	}{
		{name: "empty", session: Session{}, want: "(no narrow)"},
		{name: "stream only", session: Session{StreamName: "design"}, want: "stream:design"},
		{name: "topic", session: Session{StreamName: "design", TopicName: "logo"}, want: "stream:design topic:logo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.session.String())
		})
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store := NewSessionStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.IsEmpty())

	session := &Session{}
	session.SetNarrow("design", "logo")
	require.NoError(t, store.Save(session))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "design", loaded.StreamName)
	require.Equal(t, "logo", loaded.TopicName)
	require.False(t, loaded.UpdatedAt.IsZero())

	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
	require.NoError(t, store.Clear())
}

func TestSessionStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream: [unterminated"), 0o644))

	_, err := NewSessionStore(path).Load()
	require.Error(t, err)
}

func TestConfigSessionStoreUsesConfigDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Global.ConfigDir = "/etc/streambar"
	require.Equal(t, filepath.Join("/etc/streambar", "session.yaml"), cfg.SessionStore().Path())
}
