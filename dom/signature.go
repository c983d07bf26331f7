package dom

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// DataSignature digests the data-* attributes of els in order. A watcher
// compares signatures to tell a data attribute mutation on a container
// from an unrelated edit of the document.
func DataSignature(els []Element) string {
	h := sha256.New()
	for _, e := range els {
		var pairs []string
		for _, a := range e.n.Attr {
			k := strings.ToLower(a.Key)
			if strings.HasPrefix(k, "data-") {
				pairs = append(pairs, k+"="+a.Val)
			}
		}
		sort.Strings(pairs)
		h.Write([]byte(strings.Join(pairs, "\x00")))
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HeightSignature digests the rendered height of els in order. It changes
// when a stylesheet, inline style or class height resizes a container
// while its data attributes stay the same.
func HeightSignature(els []Element) string {
	h := sha256.New()
	for _, e := range els {
		if px, ok := e.RenderedHeight(); ok {
			h.Write(strconv.AppendFloat(nil, px, 'g', -1, 64))
		} else {
			h.Write([]byte{'-'})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}
