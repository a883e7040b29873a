// Package web holds the HTML templates and static assets of the site,
// embedded into the binary.
package web

import (
	"embed"
	"fmt"
	"hash/fnv"
	"io/fs"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the template files rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	versionsMu sync.Mutex
	versions   = make(map[string]string)
)

// AssetVersion returns a short content hash of a /static/ asset, or "" when
// the asset does not exist. Embedded files carry no modification time.
func AssetVersion(path string) string {
	name := strings.TrimPrefix(path, "/static/")
	if name == path {
		return ""
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}

	versionsMu.Lock()
	defer versionsMu.Unlock()

	if version, ok := versions[name]; ok {
		return version
	}

	data, err := fs.ReadFile(Static(), name)
	if err != nil {
		versions[name] = ""
		return ""
	}
	hash := fnv.New32a()
	_, _ = hash.Write(data)
	version := fmt.Sprintf("%08x", hash.Sum32())
	versions[name] = version
	return version
}
