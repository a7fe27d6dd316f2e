package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Collectors holds the domain counters of the questionnaire service.
// A nil *Collectors is valid and records nothing.
type Collectors struct {
	DocumentWrites *prometheus.CounterVec
	MediaIngested  *prometheus.CounterVec
	MediaBytes     prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		DocumentWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "questionnaire",
				Name:      "document_writes_total",
				Help:      "Number of question set replace attempts by result.",
			},
			[]string{"result"},
		),
		MediaIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "questionnaire",
				Name:      "media_ingested_total",
				Help:      "Number of audio upload attempts by backend and result.",
			},
			[]string{"backend", "result"},
		),
		MediaBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "questionnaire",
				Name:      "media_ingested_bytes_total",
				Help:      "Bytes of audio successfully stored.",
			},
		),
	}

	for _, col := range []prometheus.Collector{c.DocumentWrites, c.MediaIngested, c.MediaBytes} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DocumentWrite counts one replace attempt.
func (c *Collectors) DocumentWrite(result string) {
	if c == nil {
		return
	}
	c.DocumentWrites.WithLabelValues(result).Inc()
}

// MediaIngest counts one upload attempt and, on success, its size.
func (c *Collectors) MediaIngest(backend, result string, size int64) {
	if c == nil {
		return
	}
	c.MediaIngested.WithLabelValues(backend, result).Inc()
	if result == ResultSuccess && size > 0 {
		c.MediaBytes.Add(float64(size))
	}
}
