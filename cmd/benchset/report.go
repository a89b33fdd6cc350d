package main

import (
	"os"

	"github.com/g-m-twostay/hashset-lab/internal/perfcounters"
	"github.com/g-m-twostay/hashset-lab/internal/report"
)

// writeReport writes the two CSVs and the .txt summary spec.md section 6
// calls for: events.csv (per-key scheduling/event file), results.csv
// (per-run results file, here a single row for this run), and the
// filename-encoded summary.
func writeReport(result report.Result, buf *report.Buffer, counters *perfcounters.Sample) error {
	eventsFile, err := os.Create("events.csv")
	if err != nil {
		return err
	}
	defer eventsFile.Close()
	if err := report.WriteEvents(eventsFile, buf.Ordered()); err != nil {
		return err
	}

	resultsFile, err := os.Create("results.csv")
	if err != nil {
		return err
	}
	defer resultsFile.Close()
	if err := report.WriteResults(resultsFile, []report.Result{result}); err != nil {
		return err
	}

	summaryFile, err := os.Create(report.SummaryFilename(result))
	if err != nil {
		return err
	}
	defer summaryFile.Close()
	return report.WriteSummary(summaryFile, result, counters)
}
