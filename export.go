package flowicon

import (
	"fmt"
	"image"
	"slices"
	"sync"
	"time"

	"github.com/esimov/flowicon/utils"
	"github.com/pkg/errors"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Sink persists the generated artifacts. It is the only way the pipeline
// touches the outside world, so the directory layout is left to the caller.
// SaveImage is called concurrently when the exporter runs more than one worker.
type Sink interface {
	SaveImage(name string, img image.Image) error
	SaveFile(name string, data []byte) error
}

// Icon is one rendition of the icon family.
type Icon struct {
	Size  int
	Name  string
	Image *image.NRGBA
}

// IconName returns the file name of the rendition of the given size.
func IconName(name string, size int) string {
	return fmt.Sprintf("%s_%d.png", name, size)
}

// CurrentName returns the file name of the alias holding the master rendition.
func CurrentName(current string) string {
	return current + ".png"
}

// FallbackName returns the file name of the static fallback artifact.
func FallbackName(name string) string {
	return name + "_fallback.svg"
}

// Exporter resizes the master canvas to every size of the family
// and hands the renditions over to the sink.
type Exporter struct {
	Name      string
	Current   string
	Sizes     []int
	Resampler *Resampler
	Workers   int
	Sink      Sink
}

// result holds the outcome of one resize job.
type result struct {
	icon Icon
	err  error
}

// Export returns the renditions ordered from the largest to the smallest size.
// With more than one worker the renditions are resized concurrently and the
// order in which they reach the sink is not defined. The current alias is
// saved last.
func (e *Exporter) Export(master *image.NRGBA) ([]Icon, error) {
	seq, err := e.Resampler.Family(master, e.Sizes)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	var icons []Icon
	if e.Workers > 1 && len(e.Sizes) > 1 {
		icons, err = e.exportConcurrently(master)
		if err != nil {
			return nil, err
		}
	} else {
		for size, img := range seq {
			icon := Icon{Size: size, Name: IconName(e.Name, size), Image: img}
			if err := e.save(icon); err != nil {
				return nil, err
			}
			icons = append(icons, icon)
		}
	}

	if e.Sink != nil && e.Current != "" {
		name := CurrentName(e.Current)
		if err := e.Sink.SaveImage(name, master); err != nil {
			return nil, errors.Wrapf(err, "could not save %s", name)
		}
	}

	slices.SortFunc(icons, func(a, b Icon) int { return b.Size - a.Size })
	Logger().Debug().Int("icons", len(icons)).
		Str("took", utils.FormatTime(time.Since(now))).Msg("icon family exported")

	return icons, nil
}

func (e *Exporter) exportConcurrently(master *image.NRGBA) ([]Icon, error) {
	workers := e.workers()

	sizes := make(chan int)
	res := make(chan result)
	done := make(chan struct{})

	go func() {
		defer close(sizes)
		for _, size := range e.Sizes {
			select {
			case <-done:
				return
			case sizes <- size:
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			e.consumer(master, sizes, res, done)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(res)
		wg.Wait()
	}()

	// On the first error the remaining sizes are cancelled, but the channel is
	// still drained: no worker touches the sink once Export has returned.
	var err error
	icons := make([]Icon, 0, len(e.Sizes))
	for r := range res {
		if r.err != nil {
			if err == nil {
				err = r.err
				close(done)
			}
			continue
		}
		icons = append(icons, r.icon)
	}
	if err != nil {
		return nil, err
	}
	close(done)

	return icons, nil
}

// workers returns the size of the pool: never more than maxWorkers,
// nor more than there are sizes to resize.
func (e *Exporter) workers() int {
	return utils.Clamp(e.Workers, 1, utils.Min(maxWorkers, len(e.Sizes)))
}

// consumer resizes the master to the sizes read from the channel and saves every rendition.
func (e *Exporter) consumer(
	master *image.NRGBA,
	sizes <-chan int,
	res chan<- result,
	done <-chan struct{},
) {
	for size := range sizes {
		select {
		case <-done:
			return
		default:
		}

		icon := Icon{Size: size, Name: IconName(e.Name, size), Image: e.Resampler.resize(master, size)}
		err := e.save(icon)

		select {
		case <-done:
			return
		case res <- result{icon: icon, err: err}:
		}
	}
}

func (e *Exporter) save(icon Icon) error {
	if e.Sink == nil {
		return nil
	}
	if err := e.Sink.SaveImage(icon.Name, icon.Image); err != nil {
		return errors.Wrapf(err, "could not save %s", icon.Name)
	}
	return nil
}
