package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Streetwear", "streetwear"},
		{"Oversized Tees", "oversized-tees"},
		{"Tops & Tees", "tops-tees"},
		{"  Y2K  Fits  ", "y2k-fits"},
		{"ÉTÉ 2025", "t-2025"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Slugify(c.name), "Slugify(%q)", c.name)
	}
}
