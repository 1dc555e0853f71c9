package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShaderSourcesUsePixelUnits(t *testing.T) {
	for name, src := range map[string][]byte{"step": StepShaderSource(), "view": ViewShaderSource()} {
		s := string(src)
		assert.True(t, strings.HasPrefix(s, "//kage:unit pixels"), name)
		assert.Contains(t, s, "func Fragment(", name)
	}
	assert.Contains(t, string(StepShaderSource()), "var Tint vec3")
	for _, u := range []string{"Camera", "Zoom", "Viewport", "Linear"} {
		assert.Contains(t, string(ViewShaderSource()), "var "+u+" ")
	}
}
