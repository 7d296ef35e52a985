package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", name))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture %s: %v", name, err)
	}
	return doc
}

func TestAllRegistersEverySource(t *testing.T) {
	names := make(map[string]bool)
	for _, a := range All() {
		if a.Name() == "" {
			t.Fatal("adapter with empty name")
		}
		if names[a.Name()] {
			t.Fatalf("duplicate adapter name %q", a.Name())
		}
		names[a.Name()] = true
	}
	for _, want := range []string{"sketchboard", "syzygy", "minna", "arch", "mothbelly", "case", "comix", "missioncomics"} {
		if !names[want] {
			t.Errorf("source %q not registered", want)
		}
	}
}

func TestLookup(t *testing.T) {
	if a, ok := Lookup("minna"); !ok || a.Name() != "minna" {
		t.Errorf("Lookup(minna) = %v, %v", a, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}

func TestSketchboardExtract(t *testing.T) {
	doc := loadFixture(t, "sketchboard.html")
	opts := Options{
		Now:         time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		HorizonDays: 30,
	}

	s := &Sketchboard{}
	candidates := s.extract(doc, opts)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	figure := candidates[0]
	if figure.Title != "Long Pose Figure Drawing" {
		t.Errorf("title = %q", figure.Title)
	}
	if !strings.Contains(figure.Block, "February 17, 2026") {
		t.Errorf("figure block missing date: %q", figure.Block)
	}
	if figure.Notes != "Auto-imported: Sketchboard" {
		t.Errorf("notes = %q", figure.Notes)
	}

	// The drink-and-draw card keeps its date one container up; the block
	// must widen to reach it.
	dd := candidates[1]
	if dd.Title != "Drink and Draw at Madrone" {
		t.Errorf("title = %q", dd.Title)
	}
	if !strings.Contains(dd.Block, "February 18, 2026") {
		t.Errorf("drink-and-draw block not widened: %q", dd.Block)
	}
}

func TestSyzygyExtract(t *testing.T) {
	doc := loadFixture(t, "syzygy.html")
	opts := Options{
		Now:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), // a Monday
		WindowDays: 14,
	}

	s := &Syzygy{}
	candidates := s.extract(doc, opts)

	var special, recurring []string
	for _, c := range candidates {
		if c.Date == "" {
			special = append(special, c.Title)
		} else {
			recurring = append(recurring, c.Date)
		}
	}

	if len(special) != 1 || special[0] != "SF Print Fair" {
		t.Errorf("special events = %v, want [SF Print Fair]", special)
	}

	// Every Tuesday over two weeks; the every-other rule expands to nothing.
	want := []string{"2026-01-06", "2026-01-13"}
	if len(recurring) != len(want) {
		t.Fatalf("recurring dates = %v, want %v", recurring, want)
	}
	for i := range want {
		if recurring[i] != want[i] {
			t.Errorf("recurring[%d] = %q, want %q", i, recurring[i], want[i])
		}
	}

	for _, c := range candidates {
		if c.Date != "" {
			if c.Title != "Sip and Sketch" {
				t.Errorf("recurring title = %q, want Sip and Sketch", c.Title)
			}
			if c.StartTime != "19:00" || c.EndTime != "22:00" {
				t.Errorf("recurring times = %q-%q", c.StartTime, c.EndTime)
			}
		}
	}
}

func TestMinnaExtract(t *testing.T) {
	doc := loadFixture(t, "minna.html")
	opts := Options{Now: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}

	m := &Minna{}
	candidates := m.extract(doc, opts)
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	first := candidates[0]
	if first.Title != "Neon Dreams Opening Reception" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Date != "2026-01-09" {
		t.Errorf("date = %q, want 2026-01-09", first.Date)
	}
	if first.StartTime != "18:00" || first.EndTime != "22:00" {
		t.Errorf("times = %q-%q", first.StartTime, first.EndTime)
	}

	// The February header must advance the year/month accumulator.
	if candidates[2].Date != "2026-02-02" {
		t.Errorf("third date = %q, want 2026-02-02", candidates[2].Date)
	}

	// The skip list is applied at assembly; extraction still surfaces the
	// happy hour row.
	if candidates[1].Title != "Happy Hour" {
		t.Errorf("second title = %q", candidates[1].Title)
	}
}

func TestArchExtract(t *testing.T) {
	doc := loadFixture(t, "arch.html")

	a := &Arch{}
	candidates := a.extract(doc)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	gouache := candidates[0]
	if gouache.Title != "Intro to Gouache" {
		t.Errorf("title = %q", gouache.Title)
	}
	if !strings.HasPrefix(gouache.Block, "Saturday, March 7") {
		t.Errorf("block = %q", gouache.Block)
	}
	if gouache.Notes != "Materials included" {
		t.Errorf("notes = %q", gouache.Notes)
	}
	if gouache.Href != "https://shop.archsupplies.com/products/gouache-workshop" {
		t.Errorf("href = %q", gouache.Href)
	}

	ink := candidates[1]
	if ink.Title != "Botanical Ink Drawing" {
		t.Errorf("title = %q", ink.Title)
	}
	if ink.Notes != "" {
		t.Errorf("notes = %q, want empty", ink.Notes)
	}
}

func TestMothBellyExtract(t *testing.T) {
	home := loadFixture(t, "mothbelly_home.html")
	exhibit := loadFixture(t, "mothbelly_exhibit.html")
	opts := Options{Now: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}

	m := &MothBelly{}

	href := m.exhibitLink(home)
	if href != "/shop-feral-hymns" {
		t.Errorf("exhibitLink = %q", href)
	}

	candidates := m.extract(exhibit, "https://www.mothbelly.org/shop-feral-hymns", opts)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	c := candidates[0]
	if c.Title != "Feral Hymns" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Date != "2026-03-28" {
		t.Errorf("date = %q, want 2026-03-28", c.Date)
	}
	if c.Notes != "Runs through 2026-03-28" {
		t.Errorf("notes = %q", c.Notes)
	}
}

func TestCaseExtract(t *testing.T) {
	doc := loadFixture(t, "case.html")

	c := &Case{}
	candidates := c.extract(doc, "Case for Making — Art Room (SF)")
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	watercolor := candidates[0]
	if watercolor.Title != "Watercolor Mixing Basics" {
		t.Errorf("title = %q", watercolor.Title)
	}
	if watercolor.Venue != "Case for Making — Art Room (SF)" {
		t.Errorf("venue = %q", watercolor.Venue)
	}
	if watercolor.StartTime != "14:00" {
		t.Errorf("start = %q, want 14:00", watercolor.StartTime)
	}
	if !strings.Contains(watercolor.Block, "Feb 28") {
		t.Errorf("block missing date: %q", watercolor.Block)
	}
	if watercolor.Href != "/products/watercolor-mixing-basics" {
		t.Errorf("href = %q", watercolor.Href)
	}

	// The second card's only product link is an image labelled through
	// aria-label.
	paint := candidates[1]
	if paint.Title != "Intro to Handmade Paint" {
		t.Errorf("title = %q", paint.Title)
	}
	if paint.StartTime != "11:00" {
		t.Errorf("start = %q, want 11:00", paint.StartTime)
	}

	// The gift card has no when-line anywhere short of the grid, which
	// carries two and so never counts as its card.
	for _, cand := range candidates {
		if strings.Contains(cand.Title, "Gift Card") {
			t.Errorf("gift card should be skipped, got %q", cand.Title)
		}
	}
}

func TestComixEventURLs(t *testing.T) {
	doc := loadFixture(t, "comix_index.html")

	urls := comixEventURLs(doc)
	want := []string{
		"https://www.comixexperience.com/events/2026/2/5/graphic-novel-club",
		"https://www.comixexperience.com/events/2026/3/7/saga-signing",
	}
	if len(urls) != len(want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestComixExtractPage(t *testing.T) {
	opts := Options{Now: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	c := &Comix{}

	signing, ok := c.extractPage(loadFixture(t, "comix_event.html"),
		"https://www.comixexperience.com/events/2026/3/7/saga-signing", opts)
	if !ok {
		t.Fatal("signing page produced no candidate")
	}
	if signing.Title != "Saga Signing with Fiona Staples" {
		t.Errorf("title = %q", signing.Title)
	}
	if signing.Date != "2026-03-07" {
		t.Errorf("date = %q, want 2026-03-07", signing.Date)
	}
	if signing.StartTime != "15:00" || signing.EndTime != "17:00" {
		t.Errorf("times = %q-%q", signing.StartTime, signing.EndTime)
	}
	if signing.Venue != "Comix Experience Outpost" {
		t.Errorf("venue = %q", signing.Venue)
	}
	if signing.Notes != "" {
		t.Errorf("notes = %q, want empty for a single-day event", signing.Notes)
	}

	// The club page has a bare date line and a separate time range.
	club, ok := c.extractPage(loadFixture(t, "comix_event_club.html"),
		"https://www.comixexperience.com/events/2026/2/5/graphic-novel-club", opts)
	if !ok {
		t.Fatal("club page produced no candidate")
	}
	if club.Date != "2026-02-05" {
		t.Errorf("date = %q, want 2026-02-05", club.Date)
	}
	if club.StartTime != "18:00" || club.EndTime != "19:30" {
		t.Errorf("times = %q-%q", club.StartTime, club.EndTime)
	}
	if club.Venue != "Comix Experience" {
		t.Errorf("venue = %q", club.Venue)
	}
	if club.Notes != "Live Stream / Online" {
		t.Errorf("notes = %q", club.Notes)
	}
}

func TestComixExtractPageMultiDay(t *testing.T) {
	opts := Options{Now: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	c := &Comix{}

	sale, ok := c.extractPage(loadFixture(t, "comix_event_run.html"),
		"https://www.comixexperience.com/events/2026/6/19/summer-sale", opts)
	if !ok {
		t.Fatal("sale page produced no candidate")
	}
	if sale.Date != "2026-06-19" {
		t.Errorf("date = %q, want 2026-06-19", sale.Date)
	}
	if sale.EndTime != "18:00" {
		t.Errorf("end = %q, want 18:00", sale.EndTime)
	}
	if sale.Notes != "Runs through 2026-06-21" {
		t.Errorf("notes = %q", sale.Notes)
	}
}

func TestMissionComicsExtract(t *testing.T) {
	doc := loadFixture(t, "missioncomics.html")
	opts := Options{Now: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)}

	m := &MissionComics{}
	candidates := m.extract(doc, opts)
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	dd := candidates[0]
	if dd.Title != "Drink and Draw" {
		t.Errorf("title = %q", dd.Title)
	}
	if dd.Date != "2026-12-11" {
		t.Errorf("date = %q, want 2026-12-11", dd.Date)
	}
	if dd.StartTime != "19:00" || dd.EndTime != "22:00" {
		t.Errorf("times = %q-%q", dd.StartTime, dd.EndTime)
	}
	if dd.Href != "https://missionlocal.org/event/drink-and-draw-december/" {
		t.Errorf("href = %q", dd.Href)
	}

	// The January header must roll the year accumulator forward.
	if candidates[2].Date != "2027-01-08" {
		t.Errorf("third date = %q, want 2027-01-08", candidates[2].Date)
	}

	// The TBA row has no Featured line and is dropped.
	for _, c := range candidates {
		if strings.Contains(c.Title, "TBA") {
			t.Errorf("undated row should be skipped, got %q", c.Title)
		}
	}

	next := missionNextLink(doc)
	if next != "https://missionlocal.org/venue/mission-comics-and-art/page/2/" {
		t.Errorf("next link = %q", next)
	}
}

func TestMothBellyNoEndsClause(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<html><body><h3>Open Show</h3><p>On view now.</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	m := &MothBelly{}
	if got := m.extract(doc, "https://www.mothbelly.org/x", Options{Now: time.Now()}); got != nil {
		t.Errorf("expected nil candidates, got %v", got)
	}
}
