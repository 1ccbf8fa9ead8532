package bathroom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/fixture"
	"github.com/KyleBrandon/mirror-server/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertIfRegistered(t *testing.T) {
	t.Run("disarmed latch sends nothing", func(t *testing.T) {
		sink := &mockSink{}
		s := NewService(&mockFixture{}, sink, nil)

		for _, state := range []string{"", "on", "off", "free", "=)))))"} {
			assert.NoError(t, s.AlertIfRegistered(context.Background(), state))
		}

		assert.Empty(t, sink.messages)
		assert.Equal(t, LatchDisarmed, s.LatchState())
	})

	t.Run("armed latch sends one message and disarms", func(t *testing.T) {
		sink := &mockSink{}
		s := NewService(&mockFixture{}, sink, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))
		assert.Equal(t, LatchArmed, s.LatchState())

		require.NoError(t, s.AlertIfRegistered(context.Background(), "on"))

		assert.Equal(t, []string{"Congratulations!!! The bathroom is now on=)))))"}, sink.messages)
		assert.Equal(t, LatchDisarmed, s.LatchState())

		// the alert is one-off
		require.NoError(t, s.AlertIfRegistered(context.Background(), "on"))
		assert.Len(t, sink.messages, 1)
	})

	t.Run("broadcast failure propagates and keeps the alert registered", func(t *testing.T) {
		sink := &mockSink{err: errors.New("telegram unreachable")}
		s := NewService(&mockFixture{}, sink, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))

		assert.Error(t, s.AlertIfRegistered(context.Background(), "free"))
		assert.Equal(t, LatchArmed, s.LatchState())
	})

	t.Run("concurrent alerts send one message per arming", func(t *testing.T) {
		sink := &mockSink{}
		s := NewService(&mockFixture{}, sink, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s.AlertIfRegistered(context.Background(), fmt.Sprintf("free-%d", i))
			}(i)
		}
		wg.Wait()

		assert.Len(t, sink.messages, 1)
	})

	t.Run("state reads do not wait for a broadcast in flight", func(t *testing.T) {
		sink := &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
		f := &mockFixture{state: fixture.State{Connected: true, Power: fixture.POWER_OFF}}
		s := NewService(f, sink, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))

		alertDone := make(chan error, 1)
		go func() {
			alertDone <- s.AlertIfRegistered(context.Background(), "free")
		}()
		<-sink.started

		stateDone := make(chan BathroomResponse, 1)
		go func() {
			resp, _ := s.GetState(context.Background())
			stateDone <- resp
		}()

		select {
		case resp := <-stateDone:
			assert.True(t, resp.AlertPending, "expected the alert to be pending until the broadcast finishes")
		case <-time.After(2 * time.Second):
			t.Fatal("GetState blocked while a broadcast was in flight")
		}

		close(sink.release)
		require.NoError(t, <-alertDone)
		assert.Equal(t, LatchDisarmed, s.LatchState())
	})
}

func TestSignalUrgent(t *testing.T) {
	t.Run("signal twice re-sends the effect but arms once", func(t *testing.T) {
		f := &mockFixture{}
		sink := &mockSink{}
		s := NewService(f, sink, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))
		require.NoError(t, s.SignalUrgent(context.Background()))

		assert.Equal(t, 2, f.breatheCalls)
		assert.Equal(t, LatchArmed, s.LatchState())

		s.AlertIfRegistered(context.Background(), "free")
		s.AlertIfRegistered(context.Background(), "free")

		assert.Len(t, sink.messages, 1)
	})

	t.Run("fixture failure propagates", func(t *testing.T) {
		s := NewService(&mockFixture{err: errors.New("bulb offline")}, &mockSink{}, nil)

		assert.Error(t, s.SignalUrgent(context.Background()))
		assert.Equal(t, LatchArmed, s.LatchState())
	})
}

func TestGetState(t *testing.T) {
	checkedAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("light on is occupied", func(t *testing.T) {
		f := &mockFixture{state: fixture.State{Connected: true, Power: fixture.POWER_ON, Brightness: 0.5}}
		s := NewService(f, &mockSink{}, nil)
		s.now = func() time.Time { return checkedAt }

		resp, err := s.GetState(context.Background())
		require.NoError(t, err)

		assert.Equal(t, STATE_OCCUPIED, resp.State)
		assert.True(t, resp.Occupied)
		assert.False(t, resp.Urgent)
		assert.True(t, resp.CheckedAt.Equal(checkedAt))
	})

	t.Run("state is recomputed on every call", func(t *testing.T) {
		f := &mockFixture{state: fixture.State{Connected: true, Power: fixture.POWER_ON}}
		s := NewService(f, &mockSink{}, nil)

		first, _ := s.GetState(context.Background())
		f.state.Power = fixture.POWER_OFF
		second, _ := s.GetState(context.Background())

		assert.Equal(t, STATE_OCCUPIED, first.State)
		assert.Equal(t, STATE_FREE, second.State)
		assert.Equal(t, 2, f.getCalls)
	})

	t.Run("pending alert is reported", func(t *testing.T) {
		f := &mockFixture{state: fixture.State{Connected: true, Power: fixture.POWER_ON}}
		s := NewService(f, &mockSink{}, nil)

		require.NoError(t, s.SignalUrgent(context.Background()))
		resp, err := s.GetState(context.Background())
		require.NoError(t, err)

		assert.True(t, resp.AlertPending)
	})

	t.Run("fixture failure propagates", func(t *testing.T) {
		fixtureErr := errors.New("bulb offline")
		s := NewService(&mockFixture{err: fixtureErr}, &mockSink{}, nil)

		_, err := s.GetState(context.Background())
		assert.ErrorIs(t, err, fixtureErr)
	})
}

func TestConvertFixtureState(t *testing.T) {
	t.Run("disconnected light is unavailable", func(t *testing.T) {
		resp := convertFixtureState(fixture.State{Connected: false, Power: fixture.POWER_ON}, false, time.Time{})

		assert.Equal(t, STATE_UNAVAILABLE, resp.State)
		assert.False(t, resp.Occupied)
	})

	t.Run("red breathe effect is urgent", func(t *testing.T) {
		state := fixture.State{
			Connected: true,
			Power:     fixture.POWER_ON,
			Effect:    "BREATHE",
			Color:     fixture.Color{Hue: 359, Saturation: 1, Kelvin: 3500},
		}

		resp := convertFixtureState(state, true, time.Time{})

		assert.True(t, resp.Urgent)
		assert.Equal(t, ColorResponse{Hue: 359, Saturation: 1, Kelvin: 3500}, resp.Color)
	})

	t.Run("effect off is not urgent", func(t *testing.T) {
		state := fixture.State{
			Connected: true,
			Power:     fixture.POWER_ON,
			Effect:    "OFF",
			Color:     fixture.Color{Hue: 0, Saturation: 1},
		}

		assert.False(t, convertFixtureState(state, false, time.Time{}).Urgent)
	})
}

func TestBathroomHandlers(t *testing.T) {
	t.Run("get bathroom state", func(t *testing.T) {
		f := &mockFixture{state: fixture.State{Connected: true, Power: fixture.POWER_OFF}}
		h := NewHandler(NewService(f, &mockSink{}, nil), "")

		rr := utils.TestRequest(t, http.MethodGet, "/v1/bathroom", nil, h.handleBathroomGet)
		utils.TestExpectedStatus(t, rr, http.StatusOK)

		var resp BathroomResponse
		utils.TestDecodeBody(t, rr, &resp)
		assert.Equal(t, STATE_FREE, resp.State)
	})

	t.Run("get bathroom state with unreachable fixture", func(t *testing.T) {
		h := NewHandler(NewService(&mockFixture{err: errors.New("bulb offline")}, &mockSink{}, nil), "")

		rr := utils.TestRequest(t, http.MethodGet, "/v1/bathroom", nil, h.handleBathroomGet)
		utils.TestExpectedStatus(t, rr, http.StatusBadGateway)
		utils.TestExpectedMessage(t, rr, "failed to read the bathroom state")
	})

	t.Run("signal urgent then alert", func(t *testing.T) {
		sink := &mockSink{}
		h := NewHandler(NewService(&mockFixture{}, sink, nil), "")

		rr := utils.TestRequest(t, http.MethodPost, "/v1/bathroom/urgent", nil, h.handleBathroomUrgent)
		utils.TestExpectedStatus(t, rr, http.StatusAccepted)

		rr = utils.TestRequest(t, http.MethodPost, "/v1/bathroom/alert?state=free", nil, h.handleBathroomAlert)
		utils.TestExpectedStatus(t, rr, http.StatusNoContent)

		assert.Equal(t, []string{"Congratulations!!! The bathroom is now free=)))))"}, sink.messages)
	})

	t.Run("alert without a state sends the empty state", func(t *testing.T) {
		sink := &mockSink{}
		s := NewService(&mockFixture{}, sink, nil)
		h := NewHandler(s, "")

		require.NoError(t, s.SignalUrgent(context.Background()))

		rr := utils.TestRequest(t, http.MethodPost, "/v1/bathroom/alert", nil, h.handleBathroomAlert)
		utils.TestExpectedStatus(t, rr, http.StatusNoContent)

		assert.Equal(t, []string{"Congratulations!!! The bathroom is now =)))))"}, sink.messages)
	})

	t.Run("failed broadcast is a bad gateway", func(t *testing.T) {
		s := NewService(&mockFixture{}, &mockSink{err: errors.New("telegram unreachable")}, nil)
		h := NewHandler(s, "")

		require.NoError(t, s.SignalUrgent(context.Background()))

		rr := utils.TestRequest(t, http.MethodPost, "/v1/bathroom/alert?state=free", nil, h.handleBathroomAlert)
		utils.TestExpectedStatus(t, rr, http.StatusBadGateway)
	})

	t.Run("registered routes require the API key", func(t *testing.T) {
		f := &mockFixture{}
		h := NewHandler(NewService(f, &mockSink{}, nil), "12345")

		mux := http.NewServeMux()
		h.RegisterRoutes(mux)

		rr := utils.TestRequest(t, http.MethodPost, "/v1/bathroom/urgent", nil, mux.ServeHTTP)
		utils.TestExpectedStatus(t, rr, http.StatusForbidden)
		assert.Equal(t, 0, f.breatheCalls)
	})
}

type mockFixture struct {
	state        fixture.State
	err          error
	getCalls     int
	breatheCalls int
}

func (m *mockFixture) GetState(ctx context.Context) (fixture.State, error) {
	m.getCalls++
	return m.state, m.err
}

func (m *mockFixture) BreatheEffectRed(ctx context.Context) error {
	m.breatheCalls++
	return m.err
}

type mockSink struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (m *mockSink) Broadcast(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.messages = append(m.messages, message)
	return nil
}

// blockingSink holds every broadcast until release is closed.
type blockingSink struct {
	started chan struct{}
	release chan struct{}
}

func (m *blockingSink) Broadcast(ctx context.Context, message string) error {
	close(m.started)
	<-m.release
	return nil
}
