package fetch

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContainer = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

	testPackage = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Emma</dc:title></metadata>
  <manifest>
    <item id="c1" href="text/ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="c2" href="text/ch2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="c1"/>
    <itemref idref="c2"/>
  </spine>
</package>`
)

// writeEPUB builds a two-chapter EPUB in a temp dir and returns its path.
func writeEPUB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emma.epub")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	files := []struct{ name, body string }{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", testContainer},
		{"OEBPS/content.opf", testPackage},
		{"OEBPS/text/ch1.xhtml", `<html xmlns="http://www.w3.org/1999/xhtml"><head><title>c1</title></head>` +
			`<body><h2>CHAPTER I</h2><p>Emma Woodhouse.</p></body></html>`},
		{"OEBPS/text/ch2.xhtml", `<html xmlns="http://www.w3.org/1999/xhtml"><head><title>c2</title></head>` +
			`<body><h2>CHAPTER II</h2><p>Mr. Weston.</p></body></html>`},
	}
	for _, file := range files {
		w, err := zw.Create(file.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(file.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestEPUBText(t *testing.T) {
	text, err := EPUBText(writeEPUB(t))

	require.NoError(t, err)
	assert.Equal(t, "CHAPTER I\n\nEmma Woodhouse.\n\nCHAPTER II\n\nMr. Weston.\n", text)
}

func TestEPUBText_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0600))

	_, err := EPUBText(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open epub")
}
