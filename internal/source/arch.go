package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Arch scrapes the ARCH Art Supplies workshops page. The page is a single
// rich-text block: each workshop is a title, a line of the form
// "Weekday, Month Day, times, price" (no year), optional short notes, and a
// SIGN UP link. The walk runs backwards from each signup link through the
// preceding text nodes, the same way a reader's eye finds the listing the
// link belongs to.
type Arch struct{}

const archURL = "https://shop.archsupplies.com/pages/workshops"

var archDateLineRe = regexp.MustCompile(`(?i)^[A-Za-z]+,\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+[^,]+,\s+.+$`)

var archNoise = map[string]bool{
	"sign up": true, "image": true, "previous slide": true, "next slide": true,
}

func (a *Arch) Name() string { return "arch" }

func (a *Arch) Key() event.KeyFunc {
	// Shopify product URLs are stable; later duplicates win nothing.
	return func(e *event.Event) string { return e.EventURL }
}

func (a *Arch) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "arch",
		Venue:       "ARCH Art Supplies",
		EventType:   "workshop",
		BaseURL:     archURL,
		Fallback:    classify.Workshop,
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (a *Arch) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	doc, err := client.Get(archURL)
	if err != nil {
		return nil, assemble.Profile{}, err
	}
	return a.extract(doc), a.profile(opts), nil
}

func (a *Arch) extract(doc *goquery.Document) []assemble.Candidate {
	container := doc.Find(".rte").First()
	if container.Length() == 0 {
		container = doc.Find("main").First()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	texts, links := flattenContent(container)

	var out []assemble.Candidate
	for _, link := range links {
		if c, ok := archCandidate(texts, link); ok {
			out = append(out, c)
		}
	}
	return out
}

// contentLink is a signup anchor plus how many text segments precede it in
// document order.
type contentLink struct {
	href   string
	before int
}

// flattenContent walks the container depth-first, collecting normalized text
// segments in document order and the position of every SIGN UP link.
func flattenContent(container *goquery.Selection) ([]string, []contentLink) {
	var texts []string
	var links []contentLink

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := normalize.CollapseSpace(n.Data); t != "" {
				texts = append(texts, t)
			}
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); href != "" && normalize.Fold(nodeText(n)) == "sign up" {
				links = append(links, contentLink{href: href, before: len(texts)})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range container.Nodes {
		walk(n)
	}
	return texts, links
}

// archCandidate scans backwards from a signup link: the nearest date line
// anchors the listing, the next meaningful text above it is the title, and
// short lines between the date line and the link become notes.
func archCandidate(texts []string, link contentLink) (assemble.Candidate, bool) {
	const lookback = 60

	dateIdx := -1
	floor := link.before - lookback
	if floor < 0 {
		floor = 0
	}
	for i := link.before - 1; i >= floor; i-- {
		if archNoise[normalize.Fold(texts[i])] {
			continue
		}
		if archDateLineRe.MatchString(texts[i]) {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		// Structure changed; skip rather than emit a bad row.
		return assemble.Candidate{}, false
	}

	title := ""
	for i := dateIdx - 1; i >= floor; i-- {
		t := texts[i]
		if archNoise[normalize.Fold(t)] || len(t) > 160 || archDateLineRe.MatchString(t) {
			continue
		}
		title = t
		break
	}
	if title == "" {
		return assemble.Candidate{}, false
	}

	var notes []string
	for i := dateIdx + 1; i < link.before; i++ {
		t := texts[i]
		if archNoise[normalize.Fold(t)] || len(t) > 200 || archDateLineRe.MatchString(t) {
			continue
		}
		notes = append(notes, t)
	}

	return assemble.Candidate{
		Title: title,
		Block: texts[dateIdx],
		Href:  link.href,
		Notes: strings.Join(notes, " • "),
	}, true
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
