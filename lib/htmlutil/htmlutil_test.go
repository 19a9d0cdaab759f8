package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><body>
<div class="card card__x1" id="outer">
	<p class="title__a">Outer <b>bold</b> title</p>
	<section><p class="title__b" id="nested">Nested</p></section>
	<p class="Title__c">Wrong case</p>
	<span class="title__d">Wrong tag</span>
</div>
<div class="other card__x2" id="second"></div>
<div class="cardholder" id="third"></div>
</body></html>`

func loadTestPage(t testing.TB) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func ids(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("id", s.Text()))
	})
	return out
}

func TestGetText(t *testing.T) {
	doc := loadTestPage(t)
	title := doc.Find("p.title__a")
	require.Equal(t, "Outer bold title", GetText(title.Nodes[0]))
	require.Equal(t, "", GetText(nil))
}

func TestHasClassPrefix(t *testing.T) {
	doc := loadTestPage(t)
	outer := doc.Find("#outer").Nodes[0]
	require.True(t, HasClassPrefix(outer, "card"))
	require.True(t, HasClassPrefix(outer, "card__"))
	require.False(t, HasClassPrefix(outer, "Card"))
	require.False(t, HasClassPrefix(outer, "ard"))
}

func TestFindAllMatchesAnywhere(t *testing.T) {
	doc := loadTestPage(t)
	cards := FindAll(doc.Selection, Signature{Tag: "div", ClassPrefix: "card"})
	require.Equal(t, []string{"outer", "second", "third"}, ids(cards))

	titles := FindAll(doc.Selection, Signature{Tag: "p", ClassPrefix: "title"})
	require.Equal(t, 2, titles.Length())
}

func TestChildrenOnlyDirect(t *testing.T) {
	doc := loadTestPage(t)
	outer := doc.Find("#outer")
	titles := Children(outer, Signature{Tag: "p", ClassPrefix: "title"})
	require.Equal(t, 1, titles.Length())
	require.Equal(t, "Outer bold title", titles.Text())

	none := Children(outer, Signature{Tag: "p", ClassPrefix: "missing"})
	require.Equal(t, 0, none.Length())
}

func TestSignatureString(t *testing.T) {
	require.Equal(t, "ol.list*", Signature{Tag: "ol", ClassPrefix: "list"}.String())
}
