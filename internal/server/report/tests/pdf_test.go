package tests

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/report"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

func testPNG(t *testing.T) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

// Успех: непустой PDF
func TestGenerator_Render_OK(t *testing.T) {
	gen := report.NewGenerator()

	out, err := gen.Render(testPNG(t), "chest.png", models.LabelPneumonia, 97.42, "test@mail.com")

	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must start with PDF header")
}

// Неизвестное расширение картинки
func TestGenerator_Render_UnknownExtension(t *testing.T) {
	gen := report.NewGenerator()

	_, err := gen.Render(strings.NewReader("data"), "chest.bmp", models.LabelNormal, 50, "test@mail.com")

	require.ErrorIs(t, err, serr.ErrInternal)
}
