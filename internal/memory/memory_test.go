package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Memory
		wantErr bool
	}{{
		name:  "should parse plain bytes",
		value: "512",
		want:  512 * Byte,
	}, {
		name:  "should parse kilobytes",
		value: "64KB",
		want:  64 * Kilobyte,
	}, {
		name:  "should parse megabytes ignoring case and spaces",
		value: " 2 mb ",
		want:  2 * Megabyte,
	}, {
		name:  "should parse gigabytes",
		value: "1GB",
		want:  Gigabyte,
	}, {
		name:    "should reject negative values",
		value:   "-1MB",
		wantErr: true,
	}, {
		name:    "should reject garbage",
		value:   "lots",
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "2MB", (2 * Megabyte).String())
	assert.Equal(t, "1GB", Gigabyte.String())
	assert.Equal(t, "1536B", (1536 * Byte).String())
	assert.Equal(t, "3KB", (3 * Kilobyte).String())
	assert.Equal(t, int64(2), (2 * Megabyte).Megabytes())
}
