package inspect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"picgrade/lut"

	"github.com/alecthomas/kong"
)

const cubeExt = ".cube"

type CLICmd struct {
	Path   string `arg:"" optional:"" help:"A .cube file or a folder to scan for them" default:"."`
	Strict bool   `help:"Fail when a LUT does not fill its grid" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	path, err := filepath.Abs(c.Path)
	if err == nil {
		_, err = os.Stat(path)
	}
	if err != nil {
		return fmt.Errorf("invalid LUT path %q: %w", c.Path, err)
	}
	c.Path = path
	return nil
}

func (c *CLICmd) Run() error {
	paths, err := c.cubeFiles()
	if err != nil {
		return err
	}

	luts := lut.NewRegistry()
	var incompleteCount, errCount int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errCount++
			slog.Error("could not read LUT", "file", path, "error", err)
			continue
		}

		l := lut.Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), string(data))
		luts.Add(l)
		if !l.Complete() {
			incompleteCount++
		}
		slog.Info("lut", "file", path, "id", l.ID, "title", l.Name, "size", l.Size,
			"triples", l.Triples(), "complete", l.Complete())
	}

	slog.Info("stats", "luts", luts.Len(), "incomplete", incompleteCount, "errors", errCount)

	switch {
	case errCount > 0:
		return fmt.Errorf("error reading %d files", errCount)
	case c.Strict && incompleteCount > 0:
		return fmt.Errorf("%d LUTs do not fill their grid", incompleteCount)
	}
	return nil
}

func (c *CLICmd) cubeFiles() ([]string, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %q: %w", c.Path, err)
	}
	if !info.IsDir() {
		return []string{c.Path}, nil
	}

	files, err := os.ReadDir(c.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", c.Path, err)
	}

	var paths []string
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), cubeExt) {
			continue
		}
		paths = append(paths, filepath.Join(c.Path, file.Name()))
	}
	return paths, nil
}
