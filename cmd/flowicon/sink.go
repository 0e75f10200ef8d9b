package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// dirSink saves the icon family as files inside a directory.
type dirSink struct {
	dir string
}

// newDirSink creates the destination directory if it does not exist yet.
func newDirSink(dir string) (*dirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create the destination directory %s", dir)
	}
	return &dirSink{dir: dir}, nil
}

// SaveImage encodes the image as PNG, the format being inferred from the file extension.
func (s *dirSink) SaveImage(name string, img image.Image) error {
	return imaging.Save(img, s.path(name), imaging.PNGCompressionLevel(png.BestCompression))
}

func (s *dirSink) SaveFile(name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0644)
}

func (s *dirSink) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
