package datosabiertos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureDataset_DownloadsWhenMissing(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("id,programa\n1,Red WiFi\n"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "data", "points.csv")
	client := NewClient(5*time.Second, zap.NewNop())

	err := client.EnsureDataset(context.Background(), server.URL, path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,programa\n1,Red WiFi\n", string(content))
	assert.Equal(t, 1, hits)

	// Second call finds the file and never touches the network.
	err = client.EnsureDataset(context.Background(), server.URL, path)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestEnsureDataset_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "points.csv")
	client := NewClient(5*time.Second, zap.NewNop())

	err := client.EnsureDataset(context.Background(), server.URL, path)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed download must not leave a dataset behind")
}

func TestEnsureDataset_MissingFileNoURL(t *testing.T) {
	client := NewClient(time.Second, zap.NewNop())
	err := client.EnsureDataset(context.Background(), "", filepath.Join(t.TempDir(), "points.csv"))
	assert.Error(t, err)
}
