package clues

import (
	"context"
	"errors"
	"fmt"
	"minicrossword/lib/htmlutil"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("minicrossword.lib.clues")

var (
	ErrEmptyInput = errors.New("empty markup")
	ErrStructure  = errors.New("unexpected page structure")
)

// the site appends a hash to each of these class names, so only the prefix is matched.
var (
	WrapperSignature = htmlutil.Signature{Tag: "div", ClassPrefix: "xwd__clue-list--wrapper"}
	TitleSignature   = htmlutil.Signature{Tag: "h3", ClassPrefix: "xwd__clue-list--title"}
	ListSignature    = htmlutil.Signature{Tag: "ol", ClassPrefix: "xwd__clue-list--list"}
	ItemSignature    = htmlutil.Signature{Tag: "li", ClassPrefix: "xwd__clue--li"}
	NumberSignature  = htmlutil.Signature{Tag: "span", ClassPrefix: "xwd__clue--label"}
	TextSignature    = htmlutil.Signature{Tag: "span", ClassPrefix: "xwd__clue--text"}
)

// ParseError describes the first place where a page differs from the expected structure.
type ParseError struct {
	// Element is the signature (or description) of the element being checked.
	Element  string
	Expected string
	Found    string
	Err      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: expected %s, found %s", e.Element, e.Expected, e.Found)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStructure}
	}
	return []error{ErrStructure, e.Err}
}

func countError(sig htmlutil.Signature, expected string, found int) *ParseError {
	return &ParseError{
		Element:  sig.String(),
		Expected: expected,
		Found:    strconv.Itoa(found),
	}
}

// exactlyOne asserts that sel holds a single element.
func exactlyOne(sel *goquery.Selection, sig htmlutil.Signature) (*goquery.Selection, error) {
	if sel.Length() != 1 {
		return nil, countError(sig, "exactly 1", sel.Length())
	}
	return sel, nil
}

// Parse validates the markup of a puzzle page and extracts its clues.
//
// Any difference from the expected structure aborts the whole parse, the
// returned model is always nil when err is not.
func Parse(ctx context.Context, markup string) (*Model, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	model, err := parse(markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse clues")
		return nil, err
	}
	span.SetAttributes(attribute.Int("clues", model.Len()))
	return model, nil
}

func parse(markup string) (*Model, error) {
	if markup == "" {
		return nil, ErrEmptyInput
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	wrappers := htmlutil.FindAll(doc.Selection, WrapperSignature)
	if wrappers.Length() != len(Groups) {
		return nil, countError(WrapperSignature, strconv.Itoa(len(Groups)), wrappers.Length())
	}

	model := NewModel()
	seen := make(map[Group]bool, len(Groups))
	for i := range wrappers.Nodes {
		group, clues, err := parseWrapper(wrappers.Eq(i))
		if err != nil {
			return nil, err
		}
		if seen[group] {
			return nil, &ParseError{
				Element:  TitleSignature.String(),
				Expected: "each group exactly once",
				Found:    fmt.Sprintf("%q twice", string(group)),
			}
		}
		seen[group] = true
		err = model.Replace(group, clues)
		if err != nil {
			return nil, err
		}
	}
	return model, nil
}

func parseWrapper(wrapper *goquery.Selection) (Group, []Clue, error) {
	title, err := exactlyOne(htmlutil.Children(wrapper, TitleSignature), TitleSignature)
	if err != nil {
		return "", nil, err
	}
	titleText := htmlutil.GetText(title.Nodes[0])
	group, err := ParseGroup(titleText)
	if err != nil {
		return "", nil, &ParseError{
			Element:  TitleSignature.String(),
			Expected: fmt.Sprintf("one of %v", Groups),
			Found:    strconv.Quote(titleText),
		}
	}

	list, err := exactlyOne(htmlutil.Children(wrapper, ListSignature), ListSignature)
	if err != nil {
		return "", nil, err
	}

	items := htmlutil.Children(list, ItemSignature)
	if items.Length() == 0 {
		return "", nil, &ParseError{
			Element:  ItemSignature.String(),
			Expected: fmt.Sprintf("at least 1 clue in %s", group),
			Found:    "no clues found",
		}
	}

	clues := make([]Clue, 0, items.Length())
	for i := range items.Nodes {
		clue, err := parseItem(items.Eq(i))
		if err != nil {
			return "", nil, err
		}
		clues = append(clues, clue)
	}
	return group, clues, nil
}

func parseItem(item *goquery.Selection) (Clue, error) {
	number, err := exactlyOne(htmlutil.Children(item, NumberSignature), NumberSignature)
	if err != nil {
		return Clue{}, err
	}
	text, err := exactlyOne(htmlutil.Children(item, TextSignature), TextSignature)
	if err != nil {
		return Clue{}, err
	}

	label := htmlutil.GetText(number.Nodes[0])
	clue, err := NewClue(label, htmlutil.GetText(text.Nodes[0]))
	if err != nil {
		return Clue{}, &ParseError{
			Element:  NumberSignature.String(),
			Expected: "a base 10 integer",
			Found:    strconv.Quote(strings.TrimSpace(label)),
			Err:      err,
		}
	}
	return clue, nil
}
