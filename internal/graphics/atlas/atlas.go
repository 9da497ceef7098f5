// Package atlas produces the block texture atlas image: either generated from
// the registry's fill colors or loaded from a PNG and fitted to the grid.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"blockworld/internal/registry"

	"golang.org/x/image/draw"
)

// DefaultTileSize is the edge of one generated tile in pixels.
const DefaultTileSize = 16

// Size returns the atlas dimensions for a tile edge in pixels.
func Size(tile int) (w, h int) {
	return registry.AtlasColumns * tile, registry.AtlasRows * tile
}

// CellRect returns the pixel rectangle of cell c.
func CellRect(c registry.AtlasCell, tile int) image.Rectangle {
	return image.Rect(c.X*tile, c.Y*tile, (c.X+1)*tile, (c.Y+1)*tile)
}

// Build paints every placeable block's cells with its fill color and a light
// speckle. Cells shared between blocks go to the block that uses the cell on
// all of its faces.
func Build(reg *registry.Registry, tile int) *image.RGBA {
	if tile <= 0 {
		tile = DefaultTileSize
	}
	w, h := Size(tile)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	claimed := make(map[registry.AtlasCell]bool)

	for _, uniformOnly := range []bool{true, false} {
		for t := registry.BlockTypeAir + 1; t < registry.BlockTypeCount; t++ {
			def := reg.Get(t)
			if !def.IsPlaceable {
				continue
			}
			tx := def.Textures
			if uniformOnly != (tx[0] == tx[1] && tx[1] == tx[2]) {
				continue
			}
			for _, c := range tx {
				if claimed[c] {
					continue
				}
				claimed[c] = true
				paintCell(img, CellRect(c, tile), def.Fill)
			}
		}
	}
	return img
}

func paintCell(img *image.RGBA, r image.Rectangle, fill color.RGBA) {
	draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Src)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, speckle(fill, x-r.Min.X, y-r.Min.Y))
		}
	}
}

// speckle darkens some pixels by a fixed pattern so faces read as blocks.
func speckle(c color.RGBA, x, y int) color.RGBA {
	k := [4]uint32{256, 240, 248, 232}[(x*7+y*13)%4]
	return color.RGBA{
		R: uint8(uint32(c.R) * k >> 8),
		G: uint8(uint32(c.G) * k >> 8),
		B: uint8(uint32(c.B) * k >> 8),
		A: c.A,
	}
}

// Load decodes a PNG atlas and scales it to the grid for the given tile size
// with nearest-neighbor sampling.
func Load(path string, tile int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	if tile <= 0 {
		tile = max(src.Bounds().Dx()/registry.AtlasColumns, 1)
	}
	w, h := Size(tile)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
