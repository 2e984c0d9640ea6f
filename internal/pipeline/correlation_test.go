package pipeline

import (
	"encoding/json"
	"math"
	"testing"

	"adoption-eda/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		want    float64
		wantErr bool
	}{
		{"perfect", []float64{1, 2, 3}, []float64{2, 4, 6}, 1, false},
		{"inverse", []float64{1, 2, 3}, []float64{3, 2, 1}, -1, false},
		{"single pair", []float64{1}, []float64{2}, 0, true},
		{"constant", []float64{1, 1, 1}, []float64{1, 2, 3}, 0, true},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Pearson(tt.x, tt.y)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInsufficientData))
				assert.True(t, math.IsNaN(r))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, r, 1e-9)
		})
	}
}

func TestCorrelationMatrixSymmetricUnitDiagonal(t *testing.T) {
	view := model.FilteredView{Records: wideDataset().Records}
	columns := []string{model.ColumnAdoptionRate, model.ColumnDailyActiveUsers, model.ColumnYear}

	m, err := CorrelationMatrix(view, columns)
	require.NoError(t, err)
	require.Len(t, m.Values, 3)

	for i := range columns {
		assert.True(t, m.Defined[i][i])
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range columns {
			assert.True(t, m.Defined[i][j])
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
			assert.LessOrEqual(t, math.Abs(m.Values[i][j]), 1.0)
		}
	}
}

func TestCorrelationMatrixUndefinedCells(t *testing.T) {
	// one record: nothing is defined
	one := model.FilteredView{Records: exampleDataset().Records[:1]}
	m, err := CorrelationMatrix(one, model.NumericColumns)
	require.NoError(t, err)
	for i := range m.Columns {
		for j := range m.Columns {
			assert.False(t, m.Defined[i][j])
			assert.True(t, math.IsNaN(m.Values[i][j]))
		}
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "null")

	_, err = CorrelationMatrix(one, []string{"country"})
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestCorrelationMatrixZeroVarianceColumn(t *testing.T) {
	records := exampleDataset().Records[:2]
	records[0].DailyActiveUsers, records[1].DailyActiveUsers = 50, 50
	m, err := CorrelationMatrix(model.FilteredView{Records: records}, model.NumericColumns)
	require.NoError(t, err)

	assert.True(t, m.Defined[0][0])
	assert.False(t, m.Defined[0][1])
	assert.False(t, m.Defined[1][0])
	assert.False(t, m.Defined[1][1])
}
