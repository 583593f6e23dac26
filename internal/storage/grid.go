package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
)

// gridMagic opens every grid dump: magic, width and height as little-endian
// uint32, then width*height RGB triples, all zstd compressed.
const gridMagic = "MTGRID1\n"

// maxGridCells bounds what DecodeGrid will allocate from a header.
const maxGridCells = 1 << 26

var ErrBadGrid = errors.New("storage: malformed grid dump")

var (
	encOnce sync.Once
	encoder *zstd.Encoder
	encErr  error

	decOnce sync.Once
	decoder *zstd.Decoder
	decErr  error
)

// Both are only used through EncodeAll / DecodeAll, which are safe for
// concurrent use.
func sharedEncoder() (*zstd.Encoder, error) {
	encOnce.Do(func() {
		encoder, encErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	return encoder, encErr
}

func sharedDecoder() (*zstd.Decoder, error) {
	decOnce.Do(func() {
		decoder, decErr = zstd.NewReader(nil)
	})
	return decoder, decErr
}

func EncodeGrid(g *rctx.Grid) ([]byte, error) {
	var raw bytes.Buffer
	raw.Grow(len(gridMagic) + 8 + 3*len(g.Cells))
	raw.WriteString(gridMagic)
	if err := binary.Write(&raw, binary.LittleEndian, [2]uint32{uint32(g.Width), uint32(g.Height)}); err != nil {
		return nil, err
	}
	for _, c := range g.Cells {
		raw.Write([]byte{c.R, c.G, c.B})
	}

	enc, err := sharedEncoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(raw.Bytes(), nil), nil
}

func DecodeGrid(data []byte) (*rctx.Grid, error) {
	dec, err := sharedDecoder()
	if err != nil {
		return nil, err
	}
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}

	r := bytes.NewReader(raw)
	magic := make([]byte, len(gridMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != gridMagic {
		return nil, ErrBadGrid
	}
	var dims [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, ErrBadGrid
	}
	cells := uint64(dims[0]) * uint64(dims[1])
	if cells == 0 || cells > maxGridCells || uint64(r.Len()) != 3*cells {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrBadGrid, dims[0], dims[1], r.Len())
	}
	w, h := int(dims[0]), int(dims[1])

	g := rctx.NewGrid(w, h)
	rgb := raw[len(raw)-r.Len():]
	for i := range g.Cells {
		g.Cells[i] = palette.Color{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2]}
	}
	return g, nil
}
