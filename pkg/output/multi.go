package output

import "errors"

// MultiSink duplicates every call to each of its sinks
type MultiSink struct {
	sinks []ImageSink
}

// NewMultiSink creates a sink writing to all of sinks in order
func NewMultiSink(sinks ...ImageSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// WriteHeader writes the header to every sink, stopping at the first error
func (m *MultiSink) WriteHeader(width, height, maxValue int) error {
	for _, s := range m.sinks {
		if err := s.WriteHeader(width, height, maxValue); err != nil {
			return err
		}
	}
	return nil
}

// WritePixel writes p to every sink, stopping at the first error
func (m *MultiSink) WritePixel(p Pixel) error {
	for _, s := range m.sinks {
		if err := s.WritePixel(p); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
