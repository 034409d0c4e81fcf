package capability

import (
	"fmt"
	"io"
	"log/slog"
	"math"
)

const DefaultNoteDuration = 0.5

type AudioFactory func() (AudioAdapter, error)

// AudioDispatcher plays notes through a lazily constructed adapter.
type AudioDispatcher struct {
	factory AudioFactory
	adapter AudioAdapter
	logger  *slog.Logger
}

func NewAudioDispatcher(factory AudioFactory, logger *slog.Logger) *AudioDispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AudioDispatcher{factory: factory, logger: logger}
}

// Play sends one note. Durations that are not positive fall back to
// DefaultNoteDuration.
func (d *AudioDispatcher) Play(note string, duration float64) error {
	if math.IsNaN(duration) || duration <= 0 {
		duration = DefaultNoteDuration
	}
	err := guard("audio", "play", func() error {
		if d.adapter == nil {
			if d.factory == nil {
				return ErrAdapterUnavailable
			}
			adapter, err := d.factory()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrAdapterUnavailable, err)
			}
			if adapter == nil {
				return ErrAdapterUnavailable
			}
			d.adapter = adapter
		}
		return d.adapter.PlayNote(note, duration)
	})
	if err != nil {
		d.logger.Warn("audio command degraded", "note", note, "error", err)
	}
	return err
}
