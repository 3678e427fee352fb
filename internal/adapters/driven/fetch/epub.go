package fetch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBText renders the spine of the EPUB at path as plain text, one spine
// document after another.
func EPUBText(path string) (string, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", errors.New("epub has no rootfile")
	}

	var parts []string
	for i, ref := range rc.Rootfiles[0].Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open spine item %d: %w", i, err)
		}
		text, err := HTMLText(r, "")
		r.Close()
		if err != nil {
			return "", fmt.Errorf("spine item %d: %w", i, err)
		}
		if text != "" {
			parts = append(parts, strings.TrimSuffix(text, "\n"))
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
