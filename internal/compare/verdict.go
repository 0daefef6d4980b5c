package compare

import (
	"fmt"
	"strings"

	"futureagent/pkg/models"
)

// clearWinGap is the rating gap (on a 5-point scale) at which a win stops
// being marginal.
const clearWinGap = 0.5

var crossCategoryPhrasings = []string{
	"%[1]s and %[2]s solve different problems: %[1]s leads in %[3]s while %[2]s is built for %[4]s. Pick %[1]s for %[3]s work and %[2]s when your focus is %[4]s.",
	"This is not a head-to-head matchup. %[1]s is a %[3]s tool and %[2]s lives in %[4]s, so choose by use case: %[1]s for %[3]s, %[2]s for %[4]s.",
	"%[1]s (%[3]s) and %[2]s (%[4]s) sit in different categories, so a single winner would mislead. Use %[1]s if you need %[3]s and %[2]s if you need %[4]s.",
}

// buildVerdict is pure: it depends only on the two hydrated records and
// their raw category strings.
func (c *Comparer) buildVerdict(a, b models.HydratedTool, catA, catB string) models.Verdict {
	winner := winnerByRating(a, b)

	if !strings.EqualFold(catA, catB) {
		idx := 0
		if c.PhrasePick != nil {
			idx = c.PhrasePick(len(crossCategoryPhrasings))
		}
		if idx < 0 || idx >= len(crossCategoryPhrasings) {
			idx = 0
		}
		return models.Verdict{
			// winner here is only a rating tie-break label; the summary
			// deliberately avoids any "wins by rating" framing
			Winner:  winner,
			Summary: fmt.Sprintf(crossCategoryPhrasings[idx], a.Name, b.Name, catA, catB),
		}
	}

	if a.Rating == b.Rating {
		return models.Verdict{
			Winner: models.WinnerTie,
			Summary: fmt.Sprintf("It's a tie: both %s and %s earn %.1f/5.0 in our evaluation. The right pick comes down to your workflow and budget.",
				a.Name, b.Name, a.Rating),
		}
	}

	hi, lo := a, b
	if b.Rating > a.Rating {
		hi, lo = b, a
	}

	if hi.Rating-lo.Rating >= clearWinGap {
		return models.Verdict{
			Winner: winner,
			Summary: fmt.Sprintf("%s is the clear winner at %.1f/5.0 against %s's %.1f/5.0. For most teams in %s, %s is the safer pick.",
				hi.Name, hi.Rating, lo.Name, lo.Rating, catA, hi.Name),
		}
	}

	return models.Verdict{
		Winner: winner,
		Summary: fmt.Sprintf("%s edges out %s %.1f/5.0 to %.1f/5.0, but the margin is small. Both are strong %s tools; try each before committing.",
			hi.Name, lo.Name, hi.Rating, lo.Rating, catA),
	}
}

func winnerByRating(a, b models.HydratedTool) models.Winner {
	switch {
	case a.Rating > b.Rating:
		return models.WinnerToolA
	case b.Rating > a.Rating:
		return models.WinnerToolB
	default:
		return models.WinnerTie
	}
}

// buildFeatureTable assembles the side-by-side rows: the rating row, up to
// three index-paired feature rows, then integrations.
func buildFeatureTable(a, b models.HydratedTool) []models.FeatureRow {
	rows := []models.FeatureRow{{
		Label: "Expert Rating",
		ToolA: fmt.Sprintf("%.1f/5.0", a.Rating),
		ToolB: fmt.Sprintf("%.1f/5.0", b.Rating),
	}}

	for i := 0; i < 3; i++ {
		if i >= len(a.Features) && i >= len(b.Features) {
			break
		}

		label := ""
		if i < len(a.Features) && a.Features[i].Title != "" {
			label = a.Features[i].Title
		} else if i < len(b.Features) && b.Features[i].Title != "" {
			label = b.Features[i].Title
		}
		if label == "" {
			label = fmt.Sprintf("Core Feature %d", i+1)
		}

		rows = append(rows, models.FeatureRow{
			Label: label,
			ToolA: featureCell(a.Features, i),
			ToolB: featureCell(b.Features, i),
		})
	}

	rows = append(rows, models.FeatureRow{
		Label: "Integrations",
		ToolA: integrationsCell(a.Integrations),
		ToolB: integrationsCell(b.Integrations),
	})

	return rows
}

func featureCell(features []models.ToolFeature, i int) string {
	if i < len(features) && features[i].Description != "" {
		return features[i].Description
	}
	return "Supported"
}

func integrationsCell(names []string) string {
	if len(names) == 0 {
		return "Direct Access"
	}
	if len(names) > 3 {
		names = names[:3]
	}
	return strings.Join(names, ", ")
}
