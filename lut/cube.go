package lut

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Lut is a decoded 3D lookup table. Data holds Size³ RGB triples with red
// varying fastest; the triple for grid point (r, g, b) starts at
// (r + g*Size + b*Size*Size) * 3. A Lut is never modified once decoded.
type Lut struct {
	ID   string
	Name string
	Size int
	Data []float32
}

// Triples is the number of RGB samples actually decoded.
func (l *Lut) Triples() int {
	return len(l.Data) / 3
}

// Complete reports whether the decoded data fills the whole Size³ grid.
func (l *Lut) Complete() bool {
	return l.Size > 0 && len(l.Data) == l.Size*l.Size*l.Size*3
}

// Sample returns the triple at flat grid index idx, or false when the
// triple would fall outside the decoded data.
func (l *Lut) Sample(idx int) (r, g, b float32, ok bool) {
	if idx < 0 || idx+2 >= len(l.Data) {
		return 0, 0, 0, false
	}
	return l.Data[idx], l.Data[idx+1], l.Data[idx+2], true
}

const (
	titleKeyword = "TITLE"
	sizeKeyword  = "LUT_3D_SIZE"
)

// Parse decodes .cube text. It is tolerant: unknown directives and
// malformed lines are skipped, a missing LUT_3D_SIZE is inferred from the
// number of triples, and a size/data mismatch only logs a warning. Parse
// always returns a Lut, which is empty when the text holds no samples.
func Parse(name, text string) *Lut {
	l := &Lut{
		ID:   newID(),
		Name: name,
	}

	for line := range strings.Lines(text) {
		l.parseLine(strings.TrimSpace(line))
	}
	l.finish()

	return l
}

// Read decodes .cube content from r. Only errors from r are returned.
func Read(name string, r io.Reader) (*Lut, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read LUT %q: %w", name, err)
	}
	return Parse(name, string(data)), nil
}

func (l *Lut) parseLine(line string) {
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	if strings.HasPrefix(line, titleKeyword) {
		if start := strings.Index(line, `"`); start != -1 {
			if end := strings.Index(line[start+1:], `"`); end > 0 {
				l.Name = line[start+1 : start+1+end]
			}
		}
		return
	}

	fields := strings.Fields(line)
	if strings.HasPrefix(line, sizeKeyword) {
		if len(fields) > 1 {
			if n, ok := parseSize(fields[1]); ok {
				l.Size = n
			}
		}
		return
	}

	if len(fields) != 3 {
		return
	}
	var triple [3]float32
	for i, f := range fields {
		// values beyond float32 are kept and saturate to ±Inf
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		triple[i] = float32(v)
	}
	l.Data = append(l.Data, triple[:]...)
}

func (l *Lut) finish() {
	if l.Size == 0 {
		l.Size = int(math.Round(math.Cbrt(float64(l.Triples()))))
	}

	if want := l.Size * l.Size * l.Size * 3; len(l.Data) != want {
		slog.Warn("LUT data size mismatch, processing may be inaccurate",
			"lut", l.Name, "size", l.Size, "expected", want, "got", len(l.Data))
	}
}

// parseSize reads the leading integer of s, ignoring any trailing garbage.
func parseSize(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func newID() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}
