package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMeter_ClampsAndFormats(t *testing.T) {
	assert.Contains(t, RenderMeter(0.5, 10), " 50%")
	assert.Contains(t, RenderMeter(-1, 10), "  0%")
	assert.Contains(t, RenderMeter(2, 10), "100%")
	assert.Contains(t, RenderMeter(0.5, 10), "█████░░░░░")
}
