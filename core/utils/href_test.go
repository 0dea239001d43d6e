package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"Plain", "https://api.example/entity/productfolder/abc", "abc"},
		{"QueryString", "https://api.example/entity/product/p-1?expand=supplier", "p-1"},
		{"Fragment", "https://api.example/entity/store/s1#x", "s1"},
		{"TrailingSlash", "https://api.example/entity/uom/u1/", "u1"},
		{"NoSlash", "bare", "bare"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastPathSegment(tt.href))
		})
	}
}

func TestNonNegativeCount(t *testing.T) {
	assert.Equal(t, int64(3), NonNegativeCount(3))
	assert.Equal(t, int64(2), NonNegativeCount(2.9))
	assert.Equal(t, int64(0), NonNegativeCount(0.5))
	assert.Equal(t, int64(0), NonNegativeCount(-4))
	assert.Equal(t, int64(0), NonNegativeCount(math.NaN()))
}
