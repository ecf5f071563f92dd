// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/sinsinkun/webgpu-render/base/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageToRGBA returns the given image as an *image.RGBA,
// converting only if it is not already one.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rimg, ok := img.(*image.RGBA); ok {
		return rimg
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// ImageFlipY returns a vertically flipped copy of the given image,
// with the bottom source row first. Texture uploads use this so uv
// (0,0) samples the bottom-left of the source image.
func ImageFlipY(img *image.RGBA) *image.RGBA {
	sz := img.Rect.Size()
	out := image.NewRGBA(image.Rectangle{Max: sz})
	rowLen := 4 * sz.X
	for y := range sz.Y {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dst := out.Pix[(sz.Y-1-y)*out.Stride:]
		copy(dst, src)
	}
	return out
}

// OpenImage opens an image file, decoding with any registered
// format: png and jpeg from the standard library, plus bmp, tiff,
// and webp.
func OpenImage(fname string) (image.Image, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Log(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Log(err)
	}
	return img, nil
}

// SetFromFile sets texture data by loading the given image file.
// The texture Name is set to the file name.
func (tx *Texture) SetFromFile(fname string) error {
	img, err := OpenImage(fname)
	if err != nil {
		return err
	}
	tx.Name = filepath.Base(fname)
	return tx.SetFromGoImage(img)
}

// OpenTexture returns a new Texture on the given device, loaded
// from the given image file.
func OpenTexture(dev *Device, fname string) (*Texture, error) {
	tx := NewTexture(dev)
	if err := tx.SetFromFile(fname); err != nil {
		return nil, err
	}
	return tx, nil
}
