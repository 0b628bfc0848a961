package render

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

type encodeFunc func(io.Writer, image.Image) error

var encoders = map[string]encodeFunc{
	"gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	"jpeg": func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	},
	"png": func(w io.Writer, img image.Image) error {
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, img)
	},
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, nil)
	},
}

// OutputType resolves the --format value for a picture decoded as imgType.
// "same" keeps the input type and an "unsup:" prefix converts only inputs
// that cannot be written back (webp).
func OutputType(imgType, format string) string {
	outType, unsupOnly := strings.CutPrefix(format, "unsup:")
	if (unsupOnly && imgType != "webp") || outType == "same" {
		return imgType
	}
	return outType
}

// Save encodes img into destDir under srcName with the extension of
// outType. The file is written to a temporary name and renamed once fully
// flushed, so a failed save never leaves a truncated picture behind.
func Save(img image.Image, outType, destDir, srcName string) (err error) {
	encode, ok := encoders[outType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, outType)
	}

	oldExt := filepath.Ext(srcName)
	destName := fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType)

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile, img); err != nil {
		return fmt.Errorf("could not encode %s destination %q: %w", strings.ToUpper(outType), destName, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
