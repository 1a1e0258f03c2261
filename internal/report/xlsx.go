// Package report exports batch results as spreadsheets.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet    = "Summary"
	ComponentsSheet = "Components"
)

var (
	summaryHeaders = []string{
		"Rank", "Candidate", "Position", "Total Score", "Listening Reason", "Inferred",
		"Confidence", "Top Contributors", "Suggestions", "Warnings",
	}
	componentHeaders = []string{
		"Candidate", "Position", "Component", "Raw Score", "Weight", "Boost",
		"Weighted Score", "Quality", "Confidence", "Fallback",
	}
)

// qualityFills colours component rows by tier.
var qualityFills = map[scoring.Quality]string{
	scoring.QualityPerfect:      "C6EFCE",
	scoring.QualityExcellent:    "C6EFCE",
	scoring.QualityGood:         "FFEB9C",
	scoring.QualityAcceptable:   "FFEB9C",
	scoring.QualityPoor:         "FFC7CE",
	scoring.QualityIncompatible: "FF9999",
}

// WriteFile saves the batches as an .xlsx workbook at path.
func WriteFile(path string, batches ...*matching.BatchResult) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}

	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	if err := Write(out, batches...); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Write renders the batches as an .xlsx workbook with a summary sheet and a
// per-component sheet.
func Write(w io.Writer, batches ...*matching.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ComponentsSheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writeSummary(f, header, batches); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeComponents(f, header, batches); err != nil {
		return fmt.Errorf("components sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummary(f *excelize.File, header int, batches []*matching.BatchResult) error {
	if err := writeHeader(f, SummarySheet, header, summaryHeaders); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "H", "J", 60); err != nil {
		return err
	}

	row := 2
	for _, batch := range batches {
		if batch == nil {
			continue
		}
		for i, key := range batch.Ranking {
			r := batch.Results[key]
			top := make([]string, 0, len(r.TopContributors))
			for _, c := range r.TopContributors {
				top = append(top, fmt.Sprintf("%s (%.3f)", c.Name, c.WeightedScore))
			}

			values := []any{
				i + 1,
				batch.CandidateID,
				key,
				round3(r.TotalScore),
				string(r.ListeningReason),
				r.ReasonInferred,
				round3(r.Confidence),
				strings.Join(top, ", "),
				strings.Join(r.Suggestions, "\n"),
				strings.Join(r.Warnings, "\n"),
			}
			if err := setRow(f, SummarySheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeComponents(f *excelize.File, header int, batches []*matching.BatchResult) error {
	if err := writeHeader(f, ComponentsSheet, header, componentHeaders); err != nil {
		return err
	}

	fills := make(map[scoring.Quality]int, len(qualityFills))
	for q, color := range qualityFills {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}})
		if err != nil {
			return err
		}
		fills[q] = id
	}

	row := 2
	for _, batch := range batches {
		if batch == nil {
			continue
		}
		for _, key := range batch.Ranking {
			for _, cs := range batch.Results[key].Components {
				fallback, _ := cs.Details["fallback"].(bool)
				values := []any{
					batch.CandidateID,
					key,
					string(cs.Name),
					round3(cs.RawScore),
					round3(cs.Weight),
					round3(cs.Boost),
					round3(cs.WeightedScore),
					string(cs.Quality),
					round3(cs.Confidence),
					fallback,
				}
				if err := setRow(f, ComponentsSheet, row, values); err != nil {
					return err
				}

				if style, ok := fills[cs.Quality]; ok {
					from, _ := excelize.CoordinatesToCellName(1, row)
					to, _ := excelize.CoordinatesToCellName(len(values), row)
					if err := f.SetCellStyle(ComponentsSheet, from, to, style); err != nil {
						return err
					}
				}
				row++
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
