package renderer

import "image"

// copyRowAlignment is the WebGPU requirement for bytesPerRow in texture-to-buffer copies.
const copyRowAlignment = 256

// alignedBytesPerRow returns the padded row pitch for an RGBA8 image of the given width.
func alignedBytesPerRow(width int) uint32 {
	row := uint32(width) * 4
	return (row + copyRowAlignment - 1) / copyRowAlignment * copyRowAlignment
}

// unpadRows copies tightly packed RGBA rows out of a padded readback mapping.
// The result does not alias data, which is invalid after Unmap.
func unpadRows(data []byte, width, height, bytesPerRow int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := y * bytesPerRow
		if src+row > len(data) {
			break
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+row], data[src:src+row])
	}
	return img
}
