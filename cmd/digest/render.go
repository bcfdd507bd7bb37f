package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"fluxactu/internal/handler/http/api"
	"fluxactu/internal/usecase/reader"
)

const dateLayout = "02/01/2006 15:04"

func renderJSON(w io.Writer, page reader.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(api.NewArticlesResponse(page))
}

func renderTable(w io.Writer, page reader.Page) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(page.Articles))
	for _, a := range page.Articles {
		rows = append(rows, []string{
			formatDate(a),
			a.EffectiveTopic,
			formatScore(a.Score),
			a.Title,
			a.Source,
		})
	}

	table.Header([]string{"Date", "Topic", "Score", "Title", "Source"})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d article(s) · topic %s · order %s · tone %s\n",
		len(page.Articles), page.Criteria.Topic, page.Criteria.Order, page.Tone)
	return err
}

func formatDate(a reader.ArticleView) string {
	if !a.HasDate {
		return "-"
	}
	return a.PublishedAt.Format(dateLayout)
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', 2, 64)
}
