package engine

import "strings"

// parseOpenTag inspects s at position i, which must point at '<'. It returns
// the tag name, the raw attribute text, and the index just past the closing
// '>'. It reports !ok for close tags, comments, and anything else that is not
// a plain element open tag.
func parseOpenTag(s string, i int) (name, attrs string, end int, ok bool) {
	j := i + 1
	if j >= len(s) || !isNameStart(s[j]) {
		return "", "", 0, false
	}
	k := j
	for k < len(s) && isNameChar(s[k]) {
		k++
	}
	name = s[j:k]

	gt := strings.IndexByte(s[k:], '>')
	if gt < 0 {
		return "", "", 0, false
	}
	attrs = s[k : k+gt]
	// A '<' before the '>' means the tag was never closed.
	if strings.IndexByte(attrs, '<') >= 0 {
		return "", "", 0, false
	}
	return name, attrs, k + gt + 1, true
}

// findMatchingClose locates the close tag matching an already-consumed open
// tag of the given name, starting at from. Same-name nesting in page sources
// is respected by depth counting.
func findMatchingClose(s string, from int, name string) (closeStart, closeEnd int, ok bool) {
	closeTok := "</" + name + ">"
	depth := 1
	i := from
	for i < len(s) {
		idx := strings.IndexByte(s[i:], '<')
		if idx < 0 {
			break
		}
		i += idx
		if strings.HasPrefix(s[i:], closeTok) {
			depth--
			if depth == 0 {
				return i, i + len(closeTok), true
			}
			i += len(closeTok)
			continue
		}
		if n, _, end, opened := parseOpenTag(s, i); opened && n == name {
			depth++
			i = end
			continue
		}
		i++
	}
	return 0, 0, false
}

// containsTagMarker reports whether doc still carries an open or close marker
// of the given tag name. A following name character disqualifies the match so
// "my-tag" is not found inside "my-tagline".
func containsTagMarker(doc, name string) bool {
	for _, tok := range []string{"<" + name, "</" + name} {
		i := 0
		for {
			idx := strings.Index(doc[i:], tok)
			if idx < 0 {
				break
			}
			j := i + idx + len(tok)
			if j >= len(doc) || !isNameChar(doc[j]) {
				return true
			}
			i = i + idx + 1
		}
	}
	return false
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
