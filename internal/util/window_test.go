package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowAvg(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(30)
	window.Append(60)
	window.Append(120)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 90.0, avg)
}
