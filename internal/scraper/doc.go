// Package scraper turns UFC event listing and detail pages into event records.
//
// Discovery walks the paginated listing pages and resolves every event headline link
// into an absolute detail-page URL. The extractor then reads headline, venue and the
// three card-segment timestamps from each detail page, resolves a canonical start and
// end time, and renders each segment's bouts into an annotated text block using the
// weight-class and result-method lookup tables. Failures are contained to the smallest
// unit (one page, one event, one segment) and logged rather than aborting the run.
package scraper
