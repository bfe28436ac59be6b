package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			name:       "simple key",
			raw:        "https://storage.example.com/uploads/tmp-123",
			wantBucket: "uploads",
			wantKey:    "tmp-123",
		},
		{
			name:       "nested key",
			raw:        "https://storage.example.com/uploads/2024/01/report.pdf",
			wantBucket: "uploads",
			wantKey:    "2024/01/report.pdf",
		},
		{
			name:    "missing key",
			raw:     "https://storage.example.com/uploads",
			wantErr: true,
		},
		{
			name:    "empty path",
			raw:     "https://storage.example.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := parseObjectURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
