package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.DocumentWrite(ResultSuccess)
	c.DocumentWrite(ResultInvalid)
	c.MediaIngest("local", ResultSuccess, 128)
	c.MediaIngest("local", ResultError, 64)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.DocumentWrites.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.DocumentWrites.WithLabelValues(ResultInvalid)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.MediaIngested.WithLabelValues("local", ResultError)))
	assert.Equal(t, float64(128), testutil.ToFloat64(c.MediaBytes))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestCollectors_Nil(t *testing.T) {
	var c *Collectors
	assert.NotPanics(t, func() {
		c.DocumentWrite(ResultSuccess)
		c.MediaIngest("local", ResultSuccess, 1)
	})
}
