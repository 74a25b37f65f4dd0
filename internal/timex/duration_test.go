package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type holder struct {
	D Duration `json:"d" yaml:"d"`
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string", `{"d": "720h"}`, 720 * time.Hour, false},
		{"nanoseconds", `{"d": 1000000000}`, time.Second, false},
		{"bad string", `{"d": "a month"}`, 0, true},
		{"bool", `{"d": true}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h holder
			err := json.Unmarshal([]byte(tt.in), &h)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.D.Duration)
		})
	}
}

func TestUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string", "d: 168h\n", 168 * time.Hour, false},
		{"nanoseconds", "d: 2000000000\n", 2 * time.Second, false},
		{"list", "d: [1, 2]\n", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h holder
			err := yaml.Unmarshal([]byte(tt.in), &h)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.D.Duration)
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	in := holder{D: Duration{Duration: 90 * time.Minute}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d": "1h30m0s"}`, string(b))

	var out holder
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	y, err := yaml.Marshal(in)
	require.NoError(t, err)
	var outY holder
	require.NoError(t, yaml.Unmarshal(y, &outY))
	assert.Equal(t, in, outY)
}
