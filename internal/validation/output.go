package validation

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Issue kinds reported by CheckOutput.
const (
	IssueLeftoverComponentTag = "leftover-component-tag"
	IssueMissingContentRoot   = "missing-content-root"
)

// Issue describes a problem found in a rendered output file.
type Issue struct {
	File string
	Kind string
	Tag  string
}

// CheckOutput parses every rendered page under dir and reports custom-element
// tags that survived expansion and full pages missing the content root.
// Files under the fragment subtree are exempt from the content-root check:
// they are the content root.
func CheckOutput(dir, fragmentsDir, rootTag, rootID string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		doc, parseErr := html.Parse(strings.NewReader(string(content)))
		if parseErr != nil {
			return parseErr
		}

		isFragment := strings.HasPrefix(rel, fragmentsDir+"/")
		fileIssues := inspect(doc, rel, isFragment, rootTag, rootID)
		issues = append(issues, fileIssues...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func inspect(doc *html.Node, file string, isFragment bool, rootTag, rootID string) []Issue {
	var issues []Issue
	rootFound := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if strings.Contains(n.Data, "-") {
				issues = append(issues, Issue{
					File: file,
					Kind: IssueLeftoverComponentTag,
					Tag:  n.Data,
				})
			}
			if n.Data == rootTag {
				for _, attr := range n.Attr {
					if attr.Key == "id" && attr.Val == rootID {
						rootFound = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !rootFound && !isFragment {
		issues = append(issues, Issue{File: file, Kind: IssueMissingContentRoot})
	}
	return issues
}
