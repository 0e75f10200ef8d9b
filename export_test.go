package flowicon

import (
	"image"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// memSink keeps the saved artifacts in memory.
type memSink struct {
	mu     sync.Mutex
	images map[string]image.Image
	files  map[string][]byte
	failOn string
}

func newMemSink() *memSink {
	return &memSink{
		images: make(map[string]image.Image),
		files:  make(map[string][]byte),
	}
}

func (s *memSink) SaveImage(name string, img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.failOn {
		return errDiskFull
	}
	s.images[name] = img
	return nil
}

func (s *memSink) SaveFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.failOn {
		return errDiskFull
	}
	s.files[name] = data
	return nil
}

func (s *memSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for n := range s.images {
		names = append(names, n)
	}
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func TestExport_Names(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("flowsense_icon_512.png", IconName("flowsense_icon", 512))
	assert.Equal("flowsense_current.png", CurrentName("flowsense_current"))
	assert.Equal("flowsense_icon_fallback.svg", FallbackName("flowsense_icon"))
}

func TestExport_Family(t *testing.T) {
	for _, workers := range []int{1, 4, 64} {
		assert := assert.New(t)

		r, err := NewResampler(Lanczos)
		require.NoError(t, err)

		sink := newMemSink()
		e := &Exporter{
			Name:      "icon",
			Current:   "current",
			Sizes:     []int{32, 128, 64},
			Resampler: r,
			Workers:   workers,
			Sink:      sink,
		}

		master := uniformCanvas(128, deepPurple)
		icons, err := e.Export(master)
		require.NoError(t, err)

		require.Len(t, icons, 3)
		assert.Equal([]int{128, 64, 32}, []int{icons[0].Size, icons[1].Size, icons[2].Size})
		for _, icon := range icons {
			assert.Equal(IconName("icon", icon.Size), icon.Name)
			assert.Equal(icon.Size, icon.Image.Bounds().Dx())
			assert.Equal(icon.Size, icon.Image.Bounds().Dy())
		}

		assert.Equal([]string{"current.png", "icon_128.png", "icon_32.png", "icon_64.png"}, sink.names())
		assert.Same(master, sink.images["current.png"])
	}
}

func TestExport_WithoutSink(t *testing.T) {
	r, err := NewResampler(Box)
	require.NoError(t, err)

	e := &Exporter{Name: "icon", Sizes: []int{16, 8}, Resampler: r}
	icons, err := e.Export(uniformCanvas(16, coralPink))
	require.NoError(t, err)
	assert.Len(t, icons, 2)
}

func TestExport_SinkError(t *testing.T) {
	for _, workers := range []int{1, 3} {
		r, err := NewResampler(Lanczos)
		require.NoError(t, err)

		sink := newMemSink()
		sink.failOn = "icon_64.png"
		e := &Exporter{Name: "icon", Current: "current", Sizes: []int{128, 64, 32}, Resampler: r, Workers: workers, Sink: sink}

		_, err = e.Export(uniformCanvas(128, deepPurple))
		assert.True(t, errors.Is(err, errDiskFull), "workers %d: %v", workers, err)
	}

	r, err := NewResampler(Lanczos)
	require.NoError(t, err)

	sink := newMemSink()
	sink.failOn = "current.png"
	e := &Exporter{Name: "icon", Current: "current", Sizes: []int{64}, Resampler: r, Sink: sink}
	_, err = e.Export(uniformCanvas(64, deepPurple))
	assert.True(t, errors.Is(err, errDiskFull))
}

func TestExport_InvalidSize(t *testing.T) {
	r, err := NewResampler(Lanczos)
	require.NoError(t, err)

	sink := newMemSink()
	e := &Exporter{Name: "icon", Sizes: []int{64, 256}, Resampler: r, Workers: 2, Sink: sink}

	_, err = e.Export(uniformCanvas(128, deepPurple))
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	assert.Empty(t, sink.names())
}

// slowSink fails on one name and is slow on every other one.
// It counts the writes which complete after the exporter has returned.
type slowSink struct {
	mu       sync.Mutex
	failOn   string
	delay    time.Duration
	returned bool
	late     int
}

func (s *slowSink) SaveImage(name string, img image.Image) error {
	if name == s.failOn {
		return errDiskFull
	}
	time.Sleep(s.delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.returned {
		s.late++
	}
	return nil
}

func (s *slowSink) SaveFile(name string, data []byte) error { return nil }

func TestExport_ConcurrentErrorWaitsForWorkers(t *testing.T) {
	assert := assert.New(t)

	r, err := NewResampler(Box)
	require.NoError(t, err)

	sink := &slowSink{failOn: "icon_256.png", delay: 50 * time.Millisecond}
	e := &Exporter{
		Name:      "icon",
		Current:   "current",
		Sizes:     []int{512, 256, 128, 64, 32},
		Resampler: r,
		Workers:   4,
		Sink:      sink,
	}

	_, err = e.Export(uniformCanvas(512, deepPurple))
	assert.True(errors.Is(err, errDiskFull))

	sink.mu.Lock()
	sink.returned = true
	sink.mu.Unlock()

	time.Sleep(4 * sink.delay)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(0, sink.late, "the sink was written after Export returned")
}

func TestExport_WorkersCapped(t *testing.T) {
	r, err := NewResampler(Box)
	require.NoError(t, err)

	sink := newMemSink()
	e := &Exporter{Name: "icon", Sizes: []int{64, 32, 16}, Resampler: r, Workers: 1000, Sink: sink}

	icons, err := e.Export(uniformCanvas(64, coralPink))
	require.NoError(t, err)
	assert.Len(t, icons, 3)
	assert.Equal(t, 3, e.workers())

	e.Sizes = make([]int, 2*maxWorkers)
	assert.Equal(t, maxWorkers, e.workers())
}
