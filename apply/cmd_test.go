package apply

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"picgrade/grade"
	"picgrade/parallel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const warmCube = `TITLE "Warm"
LUT_3D_SIZE 2
0.1 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
0.0 1.0 1.0
1.0 0.9 0.8
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()

	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, grade.Default(), s)

	s, err = loadSettings(writeFile(t, filepath.Join(dir, "s.yaml"), "exposure: 30\nskinHue: 60\n"))
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.Exposure)
	assert.Equal(t, 60.0, s.SkinHue)
	assert.Equal(t, 100.0, s.LutIntensity)

	p, err := loadPatch(writeFile(t, filepath.Join(dir, "p.json"), `{"contrast": 15}`))
	require.NoError(t, err)
	s = s.Merge(p)
	assert.Equal(t, 15.0, s.Contrast)
	assert.Equal(t, 30.0, s.Exposure)

	p, err = loadSuggestion(writeFile(t, filepath.Join(dir, "ai.txt"), "Looks dark.\n{\"exposure\": 45}"))
	require.NoError(t, err)
	assert.Equal(t, 45.0, s.Merge(p).Exposure)

	_, err = loadSuggestion(writeFile(t, filepath.Join(dir, "none.txt"), "nothing to see"))
	assert.ErrorIs(t, err, grade.ErrNoSuggestion)

	_, err = loadSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = loadSettings(writeFile(t, filepath.Join(dir, "bad.yaml"), "exposure: [\n"))
	assert.Error(t, err)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	dir := t.TempDir()
	cmd := CLICmd{
		Scan:      dir,
		Dest:      "out",
		Settings:  writeFile(t, filepath.Join(dir, "s.yaml"), "contrast: 259\n"),
		MaxSize:   100,
		ThumbSize: 10,
	}

	err := cmd.Validate(nil)
	assert.ErrorIs(t, err, grade.ErrContrastPole)
}

func TestValidateSelectsLut(t *testing.T) {
	dir := t.TempDir()
	cmd := CLICmd{
		Scan:      dir,
		Dest:      "out",
		Lut:       writeFile(t, filepath.Join(dir, "warm.cube"), warmCube),
		MaxSize:   100,
		ThumbSize: 10,
	}

	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, filepath.Join(dir, "out"), cmd.Dest)

	l := cmd.Luts.Active(cmd.Grading.LutID)
	require.NotNil(t, l)
	assert.Equal(t, "Warm", l.Name)
	assert.True(t, l.Complete())
}

func TestRunGradesFolder(t *testing.T) {
	for _, mode := range []string{"export", "preview", "thumbnail"} {
		t.Run(mode, func(t *testing.T) {
			dir := t.TempDir()
			writePNG(t, filepath.Join(dir, "a.png"), 40, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			writePNG(t, filepath.Join(dir, "b.png"), 20, 40, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
			writeFile(t, filepath.Join(dir, "notes.txt"), "not a picture")

			cmd := CLICmd{
				Scan:      dir,
				Dest:      "graded",
				Lut:       writeFile(t, filepath.Join(dir, "warm.cube"), warmCube),
				Mode:      mode,
				MaxSize:   10,
				ThumbSize: 8,
				Format:    "same",
			}
			require.NoError(t, cmd.Validate(nil))

			pool := parallel.Start(2)
			err := cmd.Run(pool.Do, pool.Wait)
			// notes.txt and warm.cube are not pictures
			assert.EqualError(t, err, "error processing 2 files")

			f, err := os.Open(filepath.Join(dir, "graded", "a.png"))
			require.NoError(t, err)
			defer f.Close()
			img, err := png.Decode(f)
			require.NoError(t, err)

			switch mode {
			case "export":
				assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
			case "preview":
				assert.Equal(t, image.Rect(0, 0, 10, 5), img.Bounds())
			case "thumbnail":
				assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
			}

			// white maps onto the last grid point of the LUT
			r, g, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, []uint32{255, 229, 204}, []uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}
