package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// LoadOptions describes how a page is brought into a scrapeable state.
type LoadOptions struct {
	// WaitVisible is the selector that marks the page as loaded.
	WaitVisible string
	// Dismiss is an optional overlay selector (cookie banners and the
	// like). Clicking it is attempted but never required to succeed.
	Dismiss string
	// ScrollPasses scrolls to the bottom of the page this many times to
	// trigger lazy loading, pausing ScrollPause between passes.
	ScrollPasses int
	ScrollPause  time.Duration
}

// Browser is the page-fetching capability. Implementations hold an
// exclusive browser session: acquire one per run, release it with Close.
type Browser interface {
	Load(ctx context.Context, url string, opts LoadOptions) (*Page, error)
	Close() error
}

// Page is a snapshot of a loaded document.
type Page struct {
	URL string
	doc *goquery.Document
}

// NewPageFromHTML parses raw HTML into a Page. Sources are exercised in
// tests through this constructor, without a live browser.
func NewPageFromHTML(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", url, err)
	}
	return &Page{URL: url, doc: doc}, nil
}

func (p *Page) FindAll(selector string) []*Element {
	var out []*Element
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

// Element is one matched node of a Page.
type Element struct {
	sel *goquery.Selection
}

// Text returns the cleaned text of the first descendant matching selector.
func (e *Element) Text(selector string) (string, error) {
	s := e.sel.Find(selector).First()
	if s.Length() == 0 {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return cleanText(s.Text()), nil
}

// Attr returns attribute name of the first descendant matching selector.
func (e *Element) Attr(selector, name string) (string, error) {
	s := e.sel.Find(selector).First()
	if s.Length() == 0 {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	v, ok := s.Attr(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("element %q has no %q attribute", selector, name)
	}
	return strings.TrimSpace(v), nil
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
