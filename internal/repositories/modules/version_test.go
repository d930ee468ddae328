package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompatible(t *testing.T) {
	cases := []struct {
		versionRange string
		version      string
		want         bool
	}{
		{"", "2.38.1", true},
		{"", "", true},
		{" , ", "4.0.0", true},
		{"2,3", "3.1.0", true},
		{"2,3", "4.0.0", false},
		{"2.36, 2.37", "2.38.0", true},
		{">=3.0", "3.2", true},
		{"v4", "4.0.1", true},
		{"abc", "2.38", false},
		{"2", "unknown", false},
	}
	for _, tc := range cases {
		t.Run(tc.versionRange+"@"+tc.version, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCompatible(tc.versionRange, tc.version))
		})
	}
}
