package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
	assert.Empty(t, out.String())

	_, err = GetSimpleText(rdr(""), "", &out)
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(rdr(tt.in), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestParseDurationChoice(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", models.OneWeek},
		{"1d", models.OneDay},
		{"1 day", models.OneDay},
		{"1W", models.OneWeek},
		{"1m", models.OneMonth},
		{"1  month", models.OneMonth},
		{"3m", models.ThreeMonths},
		{"3 months", models.ThreeMonths},
	}
	for _, tt := range tests {
		got, err := ParseDurationChoice(tt.in, models.OneWeek)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDurationChoice("2 years", models.OneWeek)
	require.ErrorIs(t, err, common.ErrorValidation)
}
