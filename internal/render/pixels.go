package render

import "ignis/internal/fire"

const (
	smokeVisible = 5
	smokeGray    = 0x33
)

// fillStandard converts fire intensities into straight-alpha RGBA pixels in buf.
func fillStandard(buf []byte, cells []uint8, palette *fire.Palette) {
	for i, c := range cells {
		col := palette.At(int(c))
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillEnhanced blends fire over smoke: burning cells use the palette, visible
// smoke is translucent gray, and everything else is opaque black.
func fillEnhanced(buf []byte, cells, smoke []uint8, palette *fire.Palette) {
	for i, c := range cells {
		base := i * 4
		if c > 0 {
			col := palette.At(int(c))
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
			continue
		}
		if s := int(smoke[i]); s > smokeVisible {
			buf[base+0] = smokeGray
			buf[base+1] = smokeGray
			buf[base+2] = smokeGray
			buf[base+3] = uint8(min(255, s*2))
			continue
		}
		buf[base+0] = 0
		buf[base+1] = 0
		buf[base+2] = 0
		buf[base+3] = 0xff
	}
}

// Premultiply copies straight-alpha RGBA pixels from src into dst with each
// color channel scaled by alpha, the layout GPU uploads expect.
func Premultiply(dst, src []byte) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		a := uint32(src[i+3])
		if a == 0xff {
			dst[i+0], dst[i+1], dst[i+2], dst[i+3] = src[i+0], src[i+1], src[i+2], 0xff
			continue
		}
		dst[i+0] = uint8((uint32(src[i+0])*a + 127) / 255)
		dst[i+1] = uint8((uint32(src[i+1])*a + 127) / 255)
		dst[i+2] = uint8((uint32(src[i+2])*a + 127) / 255)
		dst[i+3] = uint8(a)
	}
}
