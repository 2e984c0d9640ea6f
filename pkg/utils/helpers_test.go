package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"year", "year"},
		{"  Country ", "country"},
		{`"AI_Tool"`, "ai_tool"},
		{"\ufeffyear", "year"},
		{"\ufeff\"Year\"", "year"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanHeader(tt.in), tt.in)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"2023", 2023, false},
		{" 2023 ", 2023, false},
		{"2023.0", 2023, false},
		{"2023.5", 0, true},
		{"", 0, true},
		{"year", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseIntList(t *testing.T) {
	got, err := ParseIntList([]string{"2021", "", " 2022"})
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022}, got)

	got, err = ParseIntList(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = ParseIntList([]string{"2021", "soon"})
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
