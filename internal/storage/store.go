package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/mandelterm/internal/rctx"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "image.png"
	gridFile     = "grid.zst"
)

// Store keeps screenshots, one directory per shot.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type ShotMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Kind          string    `json:"kind"`
	Re            float64   `json:"re"`
	Im            float64   `json:"im"`
	Zoom          float64   `json:"zoom"`
	CellAspect    float64   `json:"cell_aspect"`
	Exponent      float64   `json:"exponent"`
	JuliaRe       float64   `json:"julia_re"`
	JuliaIm       float64   `json:"julia_im"`
	MaxIterations int       `json:"max_iterations"`
	Smoothing     bool      `json:"smoothing"`
	Palette       string    `json:"palette"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	ImageWidth    int       `json:"image_width"`
	ImageHeight   int       `json:"image_height"`
	RenderMillis  float64   `json:"render_ms"`
}

func metadataFor(id string, ts time.Time, f *rctx.Frame, paletteName string) ShotMetadata {
	vp, p := f.Viewport, f.Params
	cw, ch := CellPixels(vp.CellAspect)
	return ShotMetadata{
		ID:            id,
		Timestamp:     ts,
		Kind:          p.Kind.String(),
		Re:            real(vp.Center),
		Im:            imag(vp.Center),
		Zoom:          vp.Zoom,
		CellAspect:    vp.CellAspect,
		Exponent:      p.Exponent,
		JuliaRe:       real(p.JuliaC),
		JuliaIm:       imag(p.JuliaC),
		MaxIterations: p.MaxIterations,
		Smoothing:     p.Smoothing,
		Palette:       paletteName,
		Width:         f.Grid.Width,
		Height:        f.Grid.Height,
		ImageWidth:    f.Grid.Width * cw,
		ImageHeight:   f.Grid.Height * ch,
		RenderMillis:  float64(f.Elapsed.Microseconds()) / 1000,
	}
}

// Save writes the frame as a PNG, its metadata and a compressed grid dump.
// It returns the new shot ID.
func (s *Store) Save(f *rctx.Frame, paletteName string) (string, error) {
	if f == nil || f.Grid == nil {
		return "", errors.New("storage: no frame to save")
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	ts := s.now()
	id, dir, err := s.allocate(f.Params.Kind.String(), ts)
	if err != nil {
		return "", err
	}

	meta := metadataFor(id, ts, f, paletteName)

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	imgFile, err := os.Create(filepath.Join(dir, imageFile))
	if err != nil {
		return "", err
	}
	defer imgFile.Close()

	cw, ch := CellPixels(f.Viewport.CellAspect)
	if err := WritePNG(imgFile, f.Grid, cw, ch); err != nil {
		return "", fmt.Errorf("storage: write png: %w", err)
	}

	dump, err := EncodeGrid(f.Grid)
	if err != nil {
		return "", fmt.Errorf("storage: encode grid: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, gridFile), dump, 0644); err != nil {
		return "", err
	}

	return id, nil
}

// allocate creates a fresh shot directory. Shots taken within the same
// millisecond get a numeric suffix.
func (s *Store) allocate(kind string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%s", kind, ts.Format("20060102-150405.000"))
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

// List returns every readable shot, oldest first.
func (s *Store) List() ([]ShotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ShotMetadata{}, nil
		}
		return nil, err
	}

	shots := make([]ShotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		shots = append(shots, *meta)
	}

	sort.Slice(shots, func(i, j int) bool {
		if shots[i].Timestamp.Equal(shots[j].Timestamp) {
			return shots[i].ID < shots[j].ID
		}
		return shots[i].Timestamp.Before(shots[j].Timestamp)
	})
	return shots, nil
}

func (s *Store) Load(id string) (*ShotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta ShotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadGrid(id string) (*rctx.Grid, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, gridFile))
	if err != nil {
		return nil, err
	}
	return DecodeGrid(data)
}

func (s *Store) ImagePath(id string) string {
	return filepath.Join(s.baseDir, id, imageFile)
}
