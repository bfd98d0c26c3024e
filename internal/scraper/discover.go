package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"github.com/pfrederiksen/ufc-events/internal/metrics"
)

// eventLinkSelector matches the headline link of every event card on a listing page
const eventLinkSelector = "h3.c-card-event--result__headline a"

// DiscoverEventURLs fetches every listing page concurrently and returns the detail-page
// URLs they link to, grouped in listing order. A listing page that cannot be fetched or
// parsed is logged and contributes nothing.
func (s *Scraper) DiscoverEventURLs(ctx context.Context, listingURLs []string) []string {
	perPage := make([][]string, len(listingURLs))

	s.fanOut(ctx, len(listingURLs), func(ctx context.Context, i int) {
		pageURL := listingURLs[i]
		log := s.log.With(logger.Fields{"listing_url": pageURL})

		html, err := s.fetcher.Fetch(ctx, pageURL)
		s.metrics.ObservePage(metrics.KindListing, err)
		if err != nil {
			log.Warn("Listing page fetch failed", nil, err)
			return
		}

		links, err := parseEventLinks(strings.NewReader(html), s.origin)
		if err != nil {
			log.Warn("Listing page parse failed", nil, err)
			return
		}
		log.Debug("Listing page parsed", logger.Fields{"event_links": len(links)})
		perPage[i] = links
	})

	urls := make([]string, 0)
	for _, links := range perPage {
		urls = append(urls, links...)
	}

	if len(urls) == 0 {
		s.log.Warn("No event URLs found", logger.Fields{"listing_pages": len(listingURLs)}, nil)
	} else {
		s.log.Info("Discovered event pages", logger.Fields{
			"listing_pages": len(listingURLs),
			"event_pages":   len(urls),
		})
	}
	return urls
}

// parseEventLinks extracts absolute detail-page URLs from one listing page
func parseEventLinks(r io.Reader, origin *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	links := make([]string, 0)
	doc.Find(eventLinkSelector).Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, origin.ResolveReference(ref).String())
	})

	return links, nil
}
