package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeParms(t *testing.T) {
	parms := NormalizeParms(map[string]any{
		"offset":   int(8),
		"byteWidth": int64(3),
		"height":   float32(8),
		"scale":    2.5,
		"flip":     true,
		"note":     "sprite",
	})

	assert.Equal(t, float64(8), parms["offset"])
	assert.Equal(t, float64(3), parms["byteWidth"])
	assert.Equal(t, float64(8), parms["height"])
	assert.Equal(t, 2.5, parms["scale"])
	assert.Equal(t, true, parms["flip"])
	assert.Equal(t, "sprite", parms["note"])
}

func TestNormalizeParmsNilMap(t *testing.T) {
	parms := NormalizeParms(nil)
	assert.NotNil(t, parms)
	assert.Empty(t, parms)
}

func TestIsAnimation(t *testing.T) {
	plain := NewVisualization("vis_one", "bitmap", nil)
	assert.False(t, plain.IsAnimation())

	anim := NewVisualization("anim_one", "anim", nil)
	anim.AnimTags = []string{"vis_one"}
	assert.True(t, anim.IsAnimation())
}
