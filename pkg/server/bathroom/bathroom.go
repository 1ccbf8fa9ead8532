package bathroom

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func NewService(fixture FixtureClient, sink NotificationSink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		fixture: fixture,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// GetState reads the fixture and converts it on every call.
func (s *Service) GetState(ctx context.Context) (BathroomResponse, error) {
	s.logger.Debug("Getting bathroom state")

	state, err := s.fixture.GetState(ctx)
	if err != nil {
		return BathroomResponse{}, err
	}

	return convertFixtureState(state, s.AlertPending(), s.now()), nil
}

// SignalUrgent registers for a one-off alert and starts the urgent effect on the
// fixture. The effect is requested on every call even if the alert is already
// registered.
func (s *Service) SignalUrgent(ctx context.Context) error {
	s.logger.Info("Signalling urgent")

	s.mu.Lock()
	if s.latch.Arm() {
		s.logger.Info("Registering for one off alert")
	}
	s.mu.Unlock()

	return s.fixture.BreatheEffectRed(ctx)
}

// AlertIfRegistered broadcasts the new bathroom state when a one-off alert is
// registered and clears the registration. It does nothing otherwise.
func (s *Service) AlertIfRegistered(ctx context.Context, state string) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if !s.AlertPending() {
		return nil
	}

	message := fmt.Sprintf(alertMessageFormat, state)
	if err := s.sink.Broadcast(ctx, message); err != nil {
		return err
	}

	s.mu.Lock()
	s.latch.Disarm()
	s.mu.Unlock()

	s.logger.Info("One off alert sent", "state", state)

	return nil
}

func (s *Service) LatchState() LatchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latch.State()
}

func (s *Service) AlertPending() bool {
	return s.LatchState() == LatchArmed
}
