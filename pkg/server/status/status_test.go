package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KyleBrandon/mirror-server/pkg/server/bathroom"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBathroom struct {
	state bathroom.BathroomResponse
	err   error
}

func (m *mockBathroom) GetState(ctx context.Context) (bathroom.BathroomResponse, error) {
	return m.state, m.err
}

func TestBuildSystemStatus(t *testing.T) {
	t.Run("bathroom state is included", func(t *testing.T) {
		h := NewHandler(&mockBathroom{state: bathroom.BathroomResponse{State: bathroom.STATE_FREE}}, nil, 0)

		status := h.buildSystemStatus(context.Background())
		require.NotNil(t, status.Bathroom)
		assert.Equal(t, bathroom.STATE_FREE, status.Bathroom.State)
		assert.Empty(t, status.ErrorMessages)
	})

	t.Run("fixture errors are reported as messages", func(t *testing.T) {
		h := NewHandler(&mockBathroom{err: errors.New("bulb offline")}, nil, 0)

		status := h.buildSystemStatus(context.Background())
		assert.Nil(t, status.Bathroom)
		assert.Equal(t, []string{"bulb offline"}, status.ErrorMessages)
	})
}

func TestStatusWebsocket(t *testing.T) {
	h := NewHandler(&mockBathroom{state: bathroom.BathroomResponse{State: bathroom.STATE_OCCUPIED, Occupied: true}}, nil, 10*time.Millisecond)

	server := httptest.NewServer(http.HandlerFunc(h.handleStatusWS))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, server.URL, nil)
	require.NoError(t, err, "failed to dial the status websocket")
	defer c.Close(websocket.StatusNormalClosure, "")

	var status SystemStatus
	require.NoError(t, wsjson.Read(ctx, c, &status), "failed to read the status")

	require.NotNil(t, status.Bathroom)
	assert.True(t, status.Bathroom.Occupied)
}
