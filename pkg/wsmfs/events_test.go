package wsmfs

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

func TestHubDeliversEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	want := Event{
		Action:   EventCreated,
		NodeKind: models.NodeKindFolder,
		NodeID:   models.NewFolderID().String(),
		Name:     "Contracts",
		AnchorID: "ACC-1",
		At:       time.Now().UTC(),
	}
	// The subscriber registers during the upgrade handshake; give the server
	// goroutine a moment before publishing.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.subs) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(want)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.NodeID, got.NodeID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.AnchorID, got.AnchorID)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()

	// Must not block or panic.
	hub.Publish(Event{Action: EventDeleted, NodeKind: models.NodeKindFile})
}

func TestServicePublishesMutations(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()

	svc := newTestService(t)
	svc.events = hub

	server := httptest.NewServer(hub)
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.subs) == 1
	}, time.Second, 10*time.Millisecond)

	folder := mustFolder(t, svc, "Watched", "ACC-1", nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventCreated, got.Action)
	assert.Equal(t, folder.ID.String(), got.NodeID)
	assert.Equal(t, models.NodeKindFolder, got.NodeKind)
}
