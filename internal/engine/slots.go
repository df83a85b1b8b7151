package engine

import (
	"regexp"
	"strings"
)

// SlotContent maps slot names to trimmed content markup. The empty string
// keys the default slot.
type SlotContent map[string]string

var (
	slotAttrRe = regexp.MustCompile(`(?:^|\s)slot="([^"]+)"`)
	nameAttrRe = regexp.MustCompile(`(?:^|\s)name="([^"]+)"`)
)

// ExtractSlots splits the inner markup of one component usage into named and
// default slot content.
//
// Child elements carrying a slot attribute are recorded under their slot name
// and removed from the markup; when the same name appears twice the later
// child wins. Whatever remains after removal, trimmed, becomes the default
// slot content. An unterminated slotted child is treated leniently as "no
// slot found" and folds into the default content.
func ExtractSlots(inner string) SlotContent {
	slots := SlotContent{}
	var rest strings.Builder

	i := 0
	for i < len(inner) {
		idx := strings.IndexByte(inner[i:], '<')
		if idx < 0 {
			rest.WriteString(inner[i:])
			break
		}
		rest.WriteString(inner[i : i+idx])
		i += idx

		name, attrs, openEnd, ok := parseOpenTag(inner, i)
		if !ok {
			rest.WriteByte('<')
			i++
			continue
		}

		m := slotAttrRe.FindStringSubmatch(attrs)
		if m == nil {
			rest.WriteString(inner[i:openEnd])
			i = openEnd
			continue
		}

		closeTok := "</" + name + ">"
		rel := strings.Index(inner[openEnd:], closeTok)
		if rel < 0 {
			// Unterminated slotted child: keep it in the default content.
			rest.WriteString(inner[i:openEnd])
			i = openEnd
			continue
		}

		// Last occurrence per name wins.
		slots[m[1]] = strings.TrimSpace(inner[openEnd : openEnd+rel])
		i = openEnd + rel + len(closeTok)
	}

	if def := strings.TrimSpace(rest.String()); def != "" {
		slots[""] = def
	}
	return slots
}

// FillSlots substitutes the template's slot placeholders with the extracted
// content. Named placeholders receive the map value for their name, default
// placeholders the default-key value; either falls back to the placeholder's
// own markup when no value was provided. Every placeholder sharing a name
// receives identical content. Provided values without a matching placeholder
// are dropped.
func FillSlots(template string, slots SlotContent) string {
	var out strings.Builder

	i := 0
	for i < len(template) {
		idx := strings.Index(template[i:], "<slot")
		if idx < 0 {
			out.WriteString(template[i:])
			break
		}
		out.WriteString(template[i : i+idx])
		i += idx

		name, attrs, openEnd, ok := parseOpenTag(template, i)
		if !ok || name != "slot" {
			out.WriteByte('<')
			i++
			continue
		}

		rel := strings.Index(template[openEnd:], "</slot>")
		if rel < 0 {
			// Unclosed placeholder stays verbatim.
			out.WriteString(template[i:openEnd])
			i = openEnd
			continue
		}
		fallback := template[openEnd : openEnd+rel]

		slotName := ""
		if m := nameAttrRe.FindStringSubmatch(attrs); m != nil {
			slotName = m[1]
		} else if strings.TrimSpace(attrs) != "" {
			// <slot> with attributes other than name is not a
			// placeholder we understand; leave it alone.
			out.WriteString(template[i:openEnd])
			i = openEnd
			continue
		}

		if value, provided := slots[slotName]; provided {
			out.WriteString(value)
		} else {
			out.WriteString(fallback)
		}
		i = openEnd + rel + len("</slot>")
	}

	return out.String()
}
