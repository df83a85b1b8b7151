// Package fragment pulls the content region out of a rendered page for
// partial-page delivery. Clients swap just this region on navigation instead
// of reloading the whole document.
package fragment

import (
	"strings"

	"golang.org/x/net/html"
)

// Content-root identity: the single element a conforming page wraps its
// content in.
const (
	ContentRootTag = "main"
	ContentRootID  = "content"
)

// Extract returns the outer markup of the content root element, open tag
// through matching close tag inclusive, sliced byte-exact out of the page.
//
// When no content root exists the whole page is returned and found is false;
// callers should flag that, since conforming page sources always carry one.
func Extract(page string) (fragment string, found bool) {
	z := html.NewTokenizer(strings.NewReader(page))

	offset := 0
	start := -1
	depth := 0

	for {
		tt := z.Next()
		rawLen := len(z.Raw())

		switch tt {
		case html.ErrorToken:
			// EOF, or markup the tokenizer cannot make sense of.
			return page, false

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != ContentRootTag {
				break
			}
			if start >= 0 {
				depth++
				break
			}
			id := ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "id" {
					id = string(val)
				}
			}
			if id == ContentRootID {
				start = offset
				depth = 1
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == ContentRootTag && start >= 0 {
				depth--
				if depth == 0 {
					return page[start : offset+rawLen], true
				}
			}
		}

		offset += rawLen
	}
}
