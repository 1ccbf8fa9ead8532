package status

import (
	"context"
	"time"

	"github.com/KyleBrandon/mirror-server/pkg/server/bathroom"
)

const DEFAULT_STATUS_INTERVAL = 1 * time.Second

type (
	SystemStatus struct {
		ErrorMessages []string                   `json:"error_messages"`
		Bathroom      *bathroom.BathroomResponse `json:"bathroom,omitempty"`
	}

	BathroomState interface {
		GetState(ctx context.Context) (bathroom.BathroomResponse, error)
	}

	Handler struct {
		bathroom          BathroomState
		originPatterns    []string
		interval          time.Duration
		heartbeatInterval time.Duration
	}
)
