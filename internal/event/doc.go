// Package event provides the record types that flow through the UFC calendar pipeline.
//
// A Record is what the scraper extracts from one event detail page: headline, venue,
// up to three card segments and a canonical start/end time. Normalize maps a Record into
// the calendar-ready NormalizedEvent consumed by the calendar serializer. Timestamps use
// the fixed-width UTC form YYYYMMDDTHHMMSSZ.
package event
