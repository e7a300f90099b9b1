package gxhash

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordHash("gxhash64", 10, false, 10*time.Nanosecond, nil)
	m.RecordHash("gxhash64", 30, false, 30*time.Nanosecond, nil)
	m.RecordHash("gxhash64", 100, true, 100*time.Nanosecond, nil)
	m.RecordHash("gxhash64", 100, true, 0, errors.New("boom"))

	s := m.GetStats()
	assert.Equal(t, int64(2), s.InlineCount)
	assert.Equal(t, int64(40), s.InlineBytes)
	assert.Equal(t, int64(20), s.InlineAvgNanos)
	assert.Equal(t, int64(2), s.OffloadCount)
	assert.Equal(t, int64(100), s.OffloadBytes)
	assert.Equal(t, int64(1), s.OffloadErrors)
	assert.Equal(t, int64(100), s.OffloadAvgNanos)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	assert.Equal(t, BasicMetricsStats{}, (&BasicMetricsCollector{}).GetStats())
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordHash("gxhash32", 1, true, time.Second, nil)
}
