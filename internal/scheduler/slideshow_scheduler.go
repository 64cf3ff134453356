package scheduler

import (
	"sync"

	"github.com/ikkim/jewel-storefront/internal/websocket"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Broadcaster pushes an event to every connected view
type Broadcaster interface {
	SendToAll(event websocket.Event) error
}

// SlideshowScheduler rotates the home page hero slides
type SlideshowScheduler struct {
	cron     *cron.Cron
	schedule string
	slides   int
	hub      Broadcaster

	mu      sync.RWMutex
	current int
}

// NewSlideshowScheduler creates a scheduler over slides slides. hub may be
// nil when no views need to be told.
func NewSlideshowScheduler(schedule string, slides int, hub Broadcaster) *SlideshowScheduler {
	return &SlideshowScheduler{
		cron:     cron.New(),
		schedule: schedule,
		slides:   slides,
		hub:      hub,
	}
}

// Start registers the rotation job and starts the cron runner
func (s *SlideshowScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.Advance()
	})
	if err != nil {
		logger.Error("Failed to add cron job for slideshow", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Slideshow scheduler started", map[string]interface{}{
		"schedule": s.schedule,
		"slides":   s.slides,
	})
	return nil
}

// Stop waits for a running job to finish
func (s *SlideshowScheduler) Stop() {
	logger.Info("Stopping slideshow scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Slideshow scheduler stopped")
}

// Current is the index of the showing slide
func (s *SlideshowScheduler) Current() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Advance moves to the next slide, wrapping around, and broadcasts it
func (s *SlideshowScheduler) Advance() int {
	if s.slides <= 0 {
		return 0
	}

	s.mu.Lock()
	s.current = (s.current + 1) % s.slides
	index := s.current
	s.mu.Unlock()

	if s.hub != nil {
		if err := s.hub.SendToAll(websocket.Event{Type: websocket.EventSlide, Index: &index}); err != nil {
			logger.Warn("Failed to broadcast slide change", map[string]interface{}{
				"index": index,
				"error": err.Error(),
			})
		}
	}

	logger.Debug("Slide advanced", map[string]interface{}{
		"index": index,
	})
	return index
}
