// Package filename derives a destination file name from a download link.
package filename

import (
	"net/url"
	"path"
	"strings"
)

// Fallback is used when the URL path has no usable base name.
const Fallback = "download_file"

// FromURL returns the last path element of the link without any query
// string. Links ending in "/" or with an empty path get the Fallback name.
func FromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return Fallback
	}
	name := path.Base(u.Path)
	// Guard against malformed links where the query was not separated by the parser.
	if i := strings.IndexByte(name, '?'); i != -1 {
		name = name[:i]
	}
	if name == "" || name == "." || name == "/" {
		return Fallback
	}
	return name
}
