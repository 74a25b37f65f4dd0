package models

import (
	"testing"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateID_IsVersionOne(t *testing.T) {
	s, err := GenerateID()
	require.NoError(t, err)
	require.NoError(t, ValidateID(s))

	id, err := uuid.Parse(s)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(1), id.Version())
}

func TestGenerateID_Unique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"v1 lower", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"v4 upper", "F47AC10B-58CC-4372-A567-0E02B2C3D479", true},
		{"empty", "", false},
		{"no dashes", "6ba7b8109dad11d180b400c04fd430c8", false},
		{"braced", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", false},
		{"urn", "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"version 0", "6ba7b810-9dad-01d1-80b4-00c04fd430c8", false},
		{"version 6", "6ba7b810-9dad-61d1-80b4-00c04fd430c8", false},
		{"ncs variant", "6ba7b810-9dad-11d1-70b4-00c04fd430c8", false},
		{"garbage", "zzzzzzzz-9dad-11d1-80b4-00c04fd430c8", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.in)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, common.ErrorValidation)
			}
		})
	}
}
