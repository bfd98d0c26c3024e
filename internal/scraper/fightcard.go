package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ufc-events/internal/event"
)

// Fight card markup and rendering
const (
	fightSelector     = "div.c-listing-fight__content"
	redNameSelector   = "div.c-listing-fight__corner-name--red"
	blueNameSelector  = "div.c-listing-fight__corner-name--blue"
	redBodySelector   = "div.c-listing-fight__corner-body--red"
	blueBodySelector  = "div.c-listing-fight__corner-body--blue"
	methodSelector    = "div.c-listing-fight__result-text.method"
	ranksRowSelector  = "div.c-listing-fight__ranks-row"
	redRankSelector   = ".c-listing-fight__corner-rank--red"
	blueRankSelector  = ".c-listing-fight__corner-rank--blue"
	oddsSelector      = "div.c-listing-fight__odds-wrapper"
	classTextSelector = "div.c-listing-fight__class-text"
	championRank      = "C"
	noOddsLine        = "-"
	boutPrefix        = "➡️  "
	noContestMarker   = " 🙅🏻‍♂️ "
	drawMarker        = " ✍🏻 "
	winnerMarker      = " 🏆"
)

// segmentMarkup locates one card segment on a detail page
type segmentMarkup struct {
	container string // fight list container
	timestamp string // element carrying data-timestamp
}

var segmentMarkups = map[event.SegmentKind]segmentMarkup{
	event.MainCard: {
		container: "#main-card",
		timestamp: "div.c-hero__headline-suffix",
	},
	event.Prelims: {
		container: "#prelims-card",
		timestamp: "#prelims-card .c-event-fight-card-broadcaster__time",
	},
	event.EarlyPrelims: {
		container: "#early-prelims",
		timestamp: "#early-prelims .c-event-fight-card-broadcaster__time",
	},
}

// Outcome is the recorded result of a bout
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeRedWin
	OutcomeBlueWin
	OutcomeDraw
	OutcomeNoContest
)

// Corner is one side of a bout
type Corner struct {
	Name string
	Rank string // digits, "C" for champion, or empty
	Odds string // moneyline, "-" for no line, or empty
}

// Bout is one scheduled fight on a card segment
type Bout struct {
	Red         Corner
	Blue        Corner
	WeightClass string // code from the weight-class table or UnknownWeightClass
	Outcome     Outcome
	Method      string // abbreviated win method, may be empty
}

// FormatFightCard renders every bout of the segment's container into seg.Notes and
// returns the number of bouts rendered. It does nothing when the segment has no time.
// When no bout can be rendered the notes stay empty and an ErrExtraction is returned.
func FormatFightCard(doc *goquery.Document, kind event.SegmentKind, seg *event.CardSegment) (int, error) {
	if !seg.Present() {
		return 0, nil
	}
	markup, ok := segmentMarkups[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown card segment %d", ErrExtraction, int(kind))
	}

	lines := make([]string, 0)
	var skipped int
	doc.Find(markup.container + " " + fightSelector).Each(func(i int, fight *goquery.Selection) {
		bout, ok := parseBout(fight)
		if !ok {
			skipped++
			return
		}
		lines = append(lines, renderBout(bout))
	})

	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: no bouts in %s (%d unreadable)", ErrExtraction, markup.container, skipped)
	}

	seg.Notes = kind.Label() + ":\n" + strings.Join(lines, "\n") + "\n\n"
	return len(lines), nil
}

// parseBout reads one fight element. A bout without either corner name is unreadable.
func parseBout(fight *goquery.Selection) (Bout, bool) {
	bout := Bout{
		Red:  Corner{Name: cornerName(fight.Find(redNameSelector).Text())},
		Blue: Corner{Name: cornerName(fight.Find(blueNameSelector).Text())},
	}
	if bout.Red.Name == "" && bout.Blue.Name == "" {
		return Bout{}, false
	}

	bout.Red.Rank, bout.Blue.Rank = parseRanks(fight.Find(ranksRowSelector))
	bout.Red.Odds, bout.Blue.Odds = parseOdds(fight.Find(oddsSelector).Text())
	bout.WeightClass = WeightClassCode(fight.Find(classTextSelector).Eq(0).Text())
	bout.Outcome = parseOutcome(
		strings.TrimSpace(fight.Find(redBodySelector).Text()),
		strings.TrimSpace(fight.Find(blueBodySelector).Text()),
	)
	if bout.Outcome == OutcomeRedWin || bout.Outcome == OutcomeBlueWin {
		bout.Method = WinMethodCode(fight.Find(methodSelector).First().Text())
	}
	return bout, true
}

// cornerName drops the leading token of a multi-token name. The site renders given
// and family names together, and only the family name is kept. This is a heuristic on
// the current markup rather than a guarantee.
func cornerName(text string) string {
	tokens := strings.Fields(text)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	default:
		return strings.Join(tokens[1:], " ")
	}
}

// parseRanks reads per-corner rank cells, falling back to splitting the row text on '#'
func parseRanks(row *goquery.Selection) (red, blue string) {
	redCell := row.Find(redRankSelector)
	blueCell := row.Find(blueRankSelector)
	if redCell.Length() > 0 || blueCell.Length() > 0 {
		return cleanRank(redCell.First().Text()), cleanRank(blueCell.First().Text())
	}

	ranks := make([]string, 0, 2)
	for _, part := range strings.Split(stripSpace(row.Text()), "#") {
		if part != "" {
			ranks = append(ranks, part)
		}
	}
	if len(ranks) > 0 {
		red = ranks[0]
	}
	if len(ranks) > 1 {
		blue = ranks[1]
	}
	return red, blue
}

func cleanRank(text string) string {
	return strings.TrimPrefix(stripSpace(text), "#")
}

// parseOdds splits the odds wrapper text, e.g. "-150 odds +130 odds", into two lines
func parseOdds(text string) (red, blue string) {
	parts := strings.Split(stripSpace(text), "odds")
	red = parts[0]
	if len(parts) > 1 {
		blue = parts[1]
	}
	return red, blue
}

func parseOutcome(redText, blueText string) Outcome {
	switch {
	case redText == "Draw":
		return OutcomeDraw
	case redText == "NC":
		return OutcomeNoContest
	case redText == "Win":
		return OutcomeRedWin
	case blueText == "Win":
		return OutcomeBlueWin
	default:
		return OutcomePending
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// FormatRank renders a rank for display: "C" stays as is, digits get a '#' prefix
func FormatRank(rank string) string {
	if rank == "" || rank == championRank {
		return rank
	}
	return "#" + rank
}

func renderBout(b Bout) string {
	var sb strings.Builder
	sb.WriteString(boutPrefix)
	switch b.Outcome {
	case OutcomeNoContest:
		sb.WriteString(noContestMarker)
	case OutcomeDraw:
		sb.WriteString(drawMarker)
	}
	renderCorner(&sb, b.Red, b.Outcome == OutcomeRedWin, b.Method)
	sb.WriteString(" vs ")
	renderCorner(&sb, b.Blue, b.Outcome == OutcomeBlueWin, b.Method)
	sb.WriteString(" @ ")
	sb.WriteString(b.WeightClass)
	return sb.String()
}

func renderCorner(sb *strings.Builder, c Corner, won bool, method string) {
	if c.Rank != "" {
		fmt.Fprintf(sb, "(%s) ", FormatRank(c.Rank))
	}
	sb.WriteString(c.Name)
	if c.Odds != "" && c.Odds != noOddsLine {
		fmt.Fprintf(sb, " (%s)", c.Odds)
	}
	if won {
		sb.WriteString(winnerMarker)
		if method != "" {
			sb.WriteString(" by ")
			sb.WriteString(method)
		}
	}
}
