package bathroom

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/fixture"
)

const (
	STATE_OCCUPIED    = "occupied"
	STATE_FREE        = "free"
	STATE_UNAVAILABLE = "unavailable"

	alertMessageFormat = "Congratulations!!! The bathroom is now %s=)))))"
)

type (
	ColorResponse struct {
		Hue        float64 `json:"hue"`
		Saturation float64 `json:"saturation"`
		Kelvin     int     `json:"kelvin"`
	}

	BathroomResponse struct {
		State        string        `json:"state"`
		Occupied     bool          `json:"occupied"`
		Urgent       bool          `json:"urgent"`
		Brightness   float64       `json:"brightness"`
		Color        ColorResponse `json:"color"`
		AlertPending bool          `json:"alert_pending"`
		CheckedAt    time.Time     `json:"checked_at"`
	}

	FixtureClient interface {
		GetState(ctx context.Context) (fixture.State, error)
		BreatheEffectRed(ctx context.Context) error
	}

	NotificationSink interface {
		Broadcast(ctx context.Context, message string) error
	}

	// Service owns the one-shot alert latch. sendMu serializes check, broadcast
	// and disarm so one arming produces at most one message. mu only guards the
	// latch itself and is never held across network calls.
	Service struct {
		fixture FixtureClient
		sink    NotificationSink
		logger  *slog.Logger
		now     func() time.Time

		sendMu sync.Mutex
		mu     sync.Mutex
		latch  AlertLatch
	}

	Handler struct {
		service *Service
		apiKey  string
	}
)
