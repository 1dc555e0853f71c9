package render

// stepShader computes one generation. Each fragment reads its own texel and
// its eight neighbours from the previous generation with toroidal wrapping.
const stepShader = `//kage:unit pixels

package main

var Tint vec3

func cell(p vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	return imageSrc0At(mod(p-origin, size) + origin)
}

func alive(p vec2) float {
	if cell(p).a > 0.0 {
		return 1.0
	}
	return 0.0
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	cur := cell(srcPos)
	n := 0.0
	n += alive(srcPos + vec2(-1.0, 1.0))
	n += alive(srcPos + vec2(0.0, 1.0))
	n += alive(srcPos + vec2(1.0, 1.0))
	n += alive(srcPos + vec2(1.0, 0.0))
	n += alive(srcPos + vec2(1.0, -1.0))
	n += alive(srcPos + vec2(0.0, -1.0))
	n += alive(srcPos + vec2(-1.0, -1.0))
	n += alive(srcPos + vec2(-1.0, 0.0))

	live := cur.a > 0.0
	if n == 3.0 {
		live = true
	} else if n != 2.0 {
		live = false
	}
	if live {
		return vec4(1.0)
	}
	return cur * vec4(Tint, 0.0)
}
`

// viewShader samples the current generation through the camera. Grid row 0
// is drawn at the bottom of the viewport.
const viewShader = `//kage:unit pixels

package main

var Camera vec2
var Zoom float
var Viewport vec2
var Linear float

func texel(p vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	return imageSrc0At(mod(floor(p), size) + origin + 0.5)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	size := imageSrc0Size()
	frag := vec2(dstPos.x, Viewport.y-dstPos.y)
	uv := ((frag/Viewport-0.5)*Zoom - Camera) * (Viewport / Viewport.y)
	t := uv * size

	c := texel(t)
	if Linear > 0.5 {
		p := t - 0.5
		f := fract(p)
		bottom := mix(texel(p), texel(p+vec2(1.0, 0.0)), f.x)
		top := mix(texel(p+vec2(0.0, 1.0)), texel(p+vec2(1.0, 1.0)), f.x)
		c = mix(bottom, top, f.y)
	}
	return vec4(c.rgb, 1.0)
}
`

// StepShaderSource returns the Kage source of the generation pass.
func StepShaderSource() []byte { return []byte(stepShader) }

// ViewShaderSource returns the Kage source of the view pass.
func ViewShaderSource() []byte { return []byte(viewShader) }
