package atlas

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"blockworld/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSize(t *testing.T) {
	img := Build(registry.NewRegistry(), 8)
	w, h := Size(8)
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
	assert.Equal(t, registry.AtlasColumns*8, w)
}

func TestBuildPaintsFillColors(t *testing.T) {
	reg := registry.NewRegistry()
	img := Build(reg, 4)

	for _, bt := range []registry.BlockType{registry.BlockTypeStone, registry.BlockTypeDirt, registry.BlockTypeWater} {
		def := reg.Get(bt)
		r := CellRect(def.Texture(registry.FaceTop), 4)
		// speckle leaves the first pixel of every cell untouched
		assert.Equal(t, def.Fill, img.RGBAAt(r.Min.X, r.Min.Y), bt.String())
	}
	water := reg.Get(registry.BlockTypeWater)
	assert.Less(t, img.RGBAAt(CellRect(water.Textures[0], 4).Min.X, 0).A, uint8(0xFF))
}

func TestSharedCellKeepsUniformOwner(t *testing.T) {
	reg := registry.NewRegistry()
	img := Build(reg, 4)
	grass := reg.Get(registry.BlockTypeGrass)
	dirt := reg.Get(registry.BlockTypeDirt)
	require.Equal(t, dirt.Textures[0], grass.Texture(registry.FaceBottom))

	r := CellRect(grass.Texture(registry.FaceBottom), 4)
	assert.Equal(t, dirt.Fill, img.RGBAAt(r.Min.X, r.Min.Y))
}

func TestLoadScalesToGrid(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, registry.AtlasColumns*2, registry.AtlasRows*2))
	red := color.RGBA{255, 0, 0, 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 1, red)

	path := filepath.Join(t.TempDir(), "atlas.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path, 4)
	require.NoError(t, err)
	w, h := Size(4)
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(4, 0))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"), 4)
	assert.Error(t, err)
}
