package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under the given node, nothing is trimmed
// or collapsed.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// HasClassPrefix reports whether one of the node's classes starts with prefix.
// The comparison is case-sensitive.
func HasClassPrefix(node *html.Node, prefix string) bool {
	for _, a := range node.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(a.Val) {
			if strings.HasPrefix(class, prefix) {
				return true
			}
		}
	}
	return false
}

// Signature identifies an element by its tag and the prefix of one of its classes,
// generated class names often carry a hash suffix (ex. "title--a1b2c").
type Signature struct {
	Tag         string
	ClassPrefix string
}

func (s Signature) String() string {
	return s.Tag + "." + s.ClassPrefix + "*"
}

func (s Signature) matches(node *html.Node) bool {
	return node.Type == html.ElementNode &&
		node.Data == s.Tag &&
		HasClassPrefix(node, s.ClassPrefix)
}

// FindAll returns every descendant of sel matching the signature, in document order.
func FindAll(sel *goquery.Selection, sig Signature) *goquery.Selection {
	return sel.Find(sig.Tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return sig.matches(s.Nodes[0])
	})
}

// Children returns the direct children of sel matching the signature, in document order.
func Children(sel *goquery.Selection, sig Signature) *goquery.Selection {
	return sel.ChildrenFiltered(sig.Tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return sig.matches(s.Nodes[0])
	})
}
