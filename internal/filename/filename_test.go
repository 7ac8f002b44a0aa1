package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromURL(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://example.com/files/archive.zip", "archive.zip"},
		{"https://example.com/files/archive.zip?token=abc&x=1", "archive.zip"},
		{"https://example.com/", Fallback},
		{"https://example.com", Fallback},
		{"https://example.com/a/b/", "b"},
		{"://not a url", Fallback},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FromURL(c.link), "link: %s", c.link)
	}
}
