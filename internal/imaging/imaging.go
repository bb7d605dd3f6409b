// Package imaging post-processes extracted report photos: border trimming,
// edge cropping, and upscaling for downstream viewing.
package imaging

import (
	"errors"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ErrEmptyImage is returned when trimming or cropping would leave no pixels.
var ErrEmptyImage = errors.New("image has no content after crop")

// Upscale2x scales the image by 2 in each dimension. Bilinear is enough for
// viewing; photos are never measured, only displayed.
func Upscale2x(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*2, b.Dy()*2))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// TrimBorder crops uniform-color borders by diffing every pixel against the
// top-left corner pixel within the given per-channel tolerance (0-255 scale).
// The returned image is the tight bounding box around non-background content.
func TrimBorder(src image.Image, tolerance uint8) (image.Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	bgR, bgG, bgB, _ := src.At(b.Min.X, b.Min.Y).RGBA()
	// RGBA returns 16-bit channels; scale tolerance to match.
	tol := uint32(tolerance) * 257

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			if chanDiff(r, bgR) <= tol && chanDiff(g, bgG) <= tol && chanDiff(bl, bgB) <= tol {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return nil, ErrEmptyImage
	}
	return crop(src, image.Rect(minX, minY, maxX+1, maxY+1)), nil
}

// CropEdges removes px pixels from all four edges. Removes render-time
// anti-aliasing artifacts left at the border after trimming.
func CropEdges(src image.Image, px int) (image.Image, error) {
	b := src.Bounds()
	r := image.Rect(b.Min.X+px, b.Min.Y+px, b.Max.X-px, b.Max.Y-px)
	if r.Empty() {
		return nil, ErrEmptyImage
	}
	return crop(src, r), nil
}

func crop(src image.Image, r image.Rectangle) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

func chanDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
