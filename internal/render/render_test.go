package render

import (
	"bytes"
	"testing"

	"adoption-eda/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name  string
		chart model.ChartData
	}{
		{"bar", model.ChartData{Name: "industry_counts", Kind: model.ChartBar, Title: "Industry", Series: []model.ChartSeries{
			{Name: "Tech", Color: "#4F46E5", Data: []model.ChartPoint{{Label: "Tech", Value: 12}}},
			{Name: "Retail", Data: []model.ChartPoint{{Label: "Retail", Value: 5}}},
		}}},
		{"histogram", model.ChartData{Name: "adoption_rate_histogram", Kind: model.ChartHistogram, Series: []model.ChartSeries{
			{Name: "adoption_rate", Data: []model.ChartPoint{{Label: "0", Value: 3}, {Label: "0.5", Value: 7}, {Label: "1", Value: 0}}},
		}}},
		{"pie", model.ChartData{Name: "ai_tool_share", Kind: model.ChartPie, Series: []model.ChartSeries{
			{Name: "ai_tool", Data: []model.ChartPoint{{Label: "Copilot", Value: 2}, {Label: "ChatGPT", Value: 1}}},
		}}},
		{"line", model.ChartData{Name: "adoption_trend", Kind: model.ChartLine, Series: []model.ChartSeries{
			{Name: "ChatGPT", Data: []model.ChartPoint{{Label: "2022", Value: 0.4}, {Label: "2023", Value: 0.6}}},
			{Name: "Copilot", Data: []model.ChartPoint{{Label: "2022", Value: 0.2}}},
		}}},
		{"line single point", model.ChartData{Name: "adoption_trend", Kind: model.ChartLine, Series: []model.ChartSeries{
			{Name: "Copilot", Data: []model.ChartPoint{{Label: "2021", Value: 0.5}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderPNG(&buf, tt.chart, 640, 320))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderPNGErrors(t *testing.T) {
	var buf bytes.Buffer

	err := RenderPNG(&buf, model.ChartData{Name: "x", Kind: model.ChartBox, Series: []model.ChartSeries{{Name: "a"}}}, 0, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedChart))

	err = RenderPNG(&buf, model.ChartData{Name: "x", Kind: model.ChartBar, Empty: true}, 0, 0)
	assert.True(t, errors.Is(err, ErrNoData))

	err = RenderPNG(&buf, model.ChartData{Name: "x", Kind: model.ChartLine, Series: []model.ChartSeries{
		{Name: "a", Data: []model.ChartPoint{{Label: "first", Value: 1}}},
	}}, 0, 0)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderable(t *testing.T) {
	assert.True(t, Renderable(model.ChartLine))
	assert.True(t, Renderable(model.ChartHistogram))
	assert.False(t, Renderable(model.ChartHeatmap))
	assert.False(t, Renderable(model.ChartBox))
}
