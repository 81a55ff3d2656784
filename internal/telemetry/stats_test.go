package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterAccumulates(t *testing.T) {
	var c Counter
	c.Add(3)
	c.Add(4)
	assert.EqualValues(t, 7, c.Value())
}

func TestStepRateFirstSampleHasNoRate(t *testing.T) {
	var r StepRate
	r.Sample(time.Unix(0, 0), 10)
	assert.Equal(t, 0.0, r.Rate())
}

func TestStepRateComputesDelta(t *testing.T) {
	var r StepRate
	base := time.Unix(0, 0)
	r.Sample(base, 0)
	r.Sample(base.Add(2*time.Second), 20)
	assert.Equal(t, 10.0, r.Rate())
}

func TestNullLoggerDiscards(t *testing.T) {
	l := Null()
	l.Printf("%d", 1)
	l.Println("ok")
}
