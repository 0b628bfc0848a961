package apply

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"picgrade/grade"
	"picgrade/lut"
	"picgrade/parallel"
	"picgrade/render"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan       string         `help:"Source folder to scan" default:"."`
	Dest       string         `help:"Destination folder for graded pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"graded"`
	Settings   string         `help:"YAML or JSON settings file, missing fields keep their defaults" group:"grade"`
	Patch      []string       `help:"Partial settings files merged over the settings, in order" group:"grade"`
	Suggestion []string       `help:"Assistant replies whose adjustment object is merged after the patches" group:"grade"`
	Lut        string         `help:"3D LUT in .cube format, selected for all pictures" group:"grade"`
	Mode       string         `help:"Rendition to produce" enum:"export,preview,thumbnail" default:"export"`
	MaxSize    int            `help:"Longest side of previews" default:"1200" group:"size"`
	ThumbSize  int            `help:"Edge of square thumbnails" default:"160" group:"size"`
	Format     string         `help:"Output format of graded image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Grading    grade.Settings `kong:"-"`
	Luts       *lut.Registry  `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.MaxSize < 1 {
		return fmt.Errorf("invalid preview size: %d", c.MaxSize)
	}
	if c.ThumbSize < 1 {
		return fmt.Errorf("invalid thumbnail size: %d", c.ThumbSize)
	}

	if c.Grading, err = loadSettings(c.Settings); err != nil {
		return err
	}
	for _, path := range c.Patch {
		p, err := loadPatch(path)
		if err != nil {
			return err
		}
		c.Grading = c.Grading.Merge(p)
	}
	for _, path := range c.Suggestion {
		p, err := loadSuggestion(path)
		if err != nil {
			return err
		}
		c.Grading = c.Grading.Merge(p)
	}

	c.Luts = lut.NewRegistry()
	if c.Lut != "" {
		l, err := loadLut(c.Lut)
		if err != nil {
			return err
		}
		c.Luts.Add(l)
		c.Grading.LutID = l.ID
	}

	if err := c.Grading.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}

func loadLut(path string) (*lut.Lut, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open LUT %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close LUT", "name", path, "error", closeErr)
		}
	}()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return lut.Read(name, f)
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	active := c.Luts.Active(c.Grading.LutID)
	if c.Grading.LutID != "" && active == nil {
		slog.Warn("selected LUT is not loaded, grading without it", "lut", c.Grading.LutID)
	}
	if active != nil {
		slog.Info("using LUT", "lut", active.Name, "size", active.Size, "complete", active.Complete())
	}

	// files are already spread over the pool, so each picture is graded
	// on its worker's goroutine
	renderer := render.Renderer{Engine: grade.Engine{Workers: 1}}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				img, imgType, err := decode(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not decode image", "error", err)
					return
				}

				var out image.Image
				switch c.Mode {
				case "preview":
					out = renderer.Preview(img, c.Grading, active, c.MaxSize)
				case "thumbnail":
					out = renderer.Thumbnail(img, c.Grading, active, c.ThumbSize)
				default:
					out = renderer.Export(img, c.Grading, active)
				}
				logger.Info("graded", "mode", c.Mode, "width", out.Bounds().Dx(), "height", out.Bounds().Dy())

				if err = render.Save(out, render.OutputType(imgType, c.Format), c.Dest, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dir", c.Dest, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image: %w", err)
	}
	defer f.Close()

	img, imgType, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return img, imgType, nil
}
