// Package report renders plain-text summaries of a dataset for the CLI and logs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"EconDash/internal/model"
)

var seriesTitles = map[string]string{
	model.SeriesCPI:          "CPI (m/m %)",
	model.SeriesUnemployment: "Unemployment (%)",
	model.SeriesTreasury10Y:  "10Y Treasury (%)",
	model.SeriesTreasury3M:   "3M Treasury (%)",
}

// FormatSummary formats one line per series: point count, covered range and latest value.
func FormatSummary(ds *model.EconomicDataset, source string, asOf time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Economic indicators | source: %s | %s\n", source, humanize.Time(asOf)))
	for _, name := range model.SeriesNames {
		points := ds.Series(name)
		b.WriteString(fmt.Sprintf("  %-18s ", seriesTitles[name]))
		if len(points) == 0 {
			b.WriteString("no data\n")
			continue
		}
		first, last := points[0], points[len(points)-1]
		b.WriteString(fmt.Sprintf("%3d pts  %s .. %s  latest %.2f\n", len(points), first.Date, last.Date, last.Value))
	}
	return b.String()
}

// FormatLoad formats one history entry.
func FormatLoad(evt *model.LoadEvent) string {
	status := "ok"
	if !evt.OK {
		status = "failed: " + evt.Error
	}
	return fmt.Sprintf("%s %-7s %s took %s %s",
		evt.StartedAt.Format(time.DateTime), evt.Trigger, evt.ID, evt.Duration.Round(time.Millisecond), status)
}
