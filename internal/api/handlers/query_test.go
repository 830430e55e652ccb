package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

func TestParseResourceParam(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    types.ResourceMap
		wantErr bool
	}{
		{"empty string gives empty map", "", types.ResourceMap{}, false},
		{"single pair", "staff:2", types.ResourceMap{"staff": 2}, false},
		{"multiple pairs", "staff:2,towel:5", types.ResourceMap{"staff": 2, "towel": 5}, false},
		{"missing quantity", "staff", nil, true},
		{"empty resource id", ":2", nil, true},
		{"non-numeric quantity", "staff:two", nil, true},
		{"zero quantity", "staff:0", nil, true},
		{"negative quantity", "staff:-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceParam(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
