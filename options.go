package superime

import "log/slog"

// Option configures a Segments collection at construction time.
type Option func(*Segments)

// WithLogger configures structured logging of collection lifecycle events.
// Logging is off by default; the model stays silent unless asked.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	segments := superime.NewSegments(superime.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(s *Segments) {
		s.logger = logger
	}
}

// WithSegmentPoolCapacity sizes the segment slab. Sessions that routinely
// hold more segments than the default 32 can raise it; allocation beyond
// the slab transparently falls back to the heap either way.
func WithSegmentPoolCapacity(capacity int) Option {
	return func(s *Segments) {
		s.poolCapacity = capacity
	}
}

// WithMaxHistorySegmentsSize sets the initial history retention cap (see
// SetMaxHistorySegmentsSize).
func WithMaxHistorySegmentsSize(n int) Option {
	return func(s *Segments) {
		s.maxHistorySegmentsSize = n
	}
}
