package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestErrorLoggerEmitsErrorf(t *testing.T) {
	var buf bytes.Buffer
	Error.SetOutput(&buf)
	defer Error.SetOutput(os.Stderr)

	Error.Errorf("occupancy anomaly: table %d claimed twice", 7)

	assert.Contains(t, buf.String(), "occupancy anomaly: table 7 claimed twice")
}

func TestErrorLoggerFiltersBelowErrorLevel(t *testing.T) {
	// Everything routed to Error must go through Errorf or stronger, or it
	// is dropped by the level filter.
	assert.True(t, Error.IsLevelEnabled(logrus.ErrorLevel))
	assert.False(t, Error.IsLevelEnabled(logrus.InfoLevel))
}

func TestInfoLoggerEmitsInfof(t *testing.T) {
	var buf bytes.Buffer
	Info.SetOutput(&buf)
	defer Info.SetOutput(os.Stdout)

	Info.Infof("waitlist sweep: expired %d lapsed notifications", 3)

	assert.Contains(t, buf.String(), "expired 3 lapsed notifications")
}
