package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, Clamp(-3, 0, 255))
	assert.Equal(255, Clamp(300, 0, 255))
	assert.Equal(42, Clamp(42, 0, 255))
	assert.Equal(1.0, Clamp(1.5, 0.0, 1.0))
	assert.Equal(3, Min(7, 3))
	assert.Equal(7, Max(7, 3))
	assert.Equal(4.5, Abs(-4.5))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]int{1, 2}, 3))
}

func TestUtils_ParseSizes(t *testing.T) {
	sizes, err := ParseSizes("1024, 512,,32")
	require.NoError(t, err)
	assert.Equal(t, []int{1024, 512, 32}, sizes)

	_, err = ParseSizes("64,large")
	assert.Error(t, err)
}

func TestUtils_DecorateText(t *testing.T) {
	NoColor = false
	s := DecorateText("done", SuccessMessage)
	assert.True(t, strings.HasPrefix(s, SuccessColor))
	assert.True(t, strings.HasSuffix(s, DefaultColor))

	NoColor = true
	defer func() { NoColor = false }()
	assert.Equal(t, "done", DecorateText("done", SuccessMessage))
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "250ms", FormatTime(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(125*time.Second))
}

func TestUtils_SpinnerStopMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "working", time.Millisecond, false)
	s.StopMsg = "finished"
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	// a second Stop must not block or panic
	s.Stop()

	assert.True(t, strings.HasSuffix(buf.String(), "finished"))
}
