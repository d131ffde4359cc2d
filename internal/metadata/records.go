// Package metadata emits the three CSV tables consumed downstream: the
// page import table, the category linkage table, and the Pinterest
// scheduling table.
package metadata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PageRecord is one row of coloring_pages.csv.
type PageRecord struct {
	Title       string
	Description string
	ImageURL    string
	FileName    string
	IsPublished bool
}

// CategoryLink is one row of coloring_page_categories.csv.
type CategoryLink struct {
	PageTitle  string
	CategoryID string
}

// PinRecord is one row of pinterest_upload.csv.
type PinRecord struct {
	Title       string
	MediaURL    string
	Board       string
	Description string
	Link        string
	PublishDate time.Time
	Keywords    []string
}

// OptimalHours is the fixed daily rotation of preferred posting hours.
var OptimalHours = []int{20, 16, 21, 15, 14}

// PublishDate assigns the index-th record its staggered slot: slots start
// the day after start and cycle through OptimalHours, advancing one
// calendar day once a day's slots are used up.
func PublishDate(start time.Time, index int) time.Time {
	day := index / len(OptimalHours)
	hour := OptimalHours[index%len(OptimalHours)]
	d := start.AddDate(0, 0, 1+day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}

const (
	PagesFile      = "coloring_pages.csv"
	CategoriesFile = "coloring_page_categories.csv"
	PinterestFile  = "pinterest_upload.csv"
)

// WriteAll writes the three tables under dir in one pass, after the full
// walk has completed. Header rows and column order are fixed contracts
// with the downstream importers.
func WriteAll(dir string, pages []PageRecord, links []CategoryLink, pins []PinRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	pageRows := [][]string{{"title", "description", "image_url", "file_name", "is_published"}}
	for _, p := range pages {
		pageRows = append(pageRows, []string{
			p.Title, p.Description, p.ImageURL, p.FileName, strconv.FormatBool(p.IsPublished),
		})
	}
	if err := writeCSV(filepath.Join(dir, PagesFile), pageRows); err != nil {
		return err
	}

	linkRows := [][]string{{"coloring_page_title", "category_id"}}
	for _, l := range links {
		linkRows = append(linkRows, []string{l.PageTitle, l.CategoryID})
	}
	if err := writeCSV(filepath.Join(dir, CategoriesFile), linkRows); err != nil {
		return err
	}

	pinRows := [][]string{{"Title", "Media URL", "Pinterest board", "Description", "Link", "Publish date", "Keywords"}}
	for _, p := range pins {
		pinRows = append(pinRows, []string{
			p.Title,
			p.MediaURL,
			p.Board,
			p.Description,
			p.Link,
			p.PublishDate.Format("2006-01-02T15:04:05"),
			strings.Join(p.Keywords, ","),
		})
	}
	return writeCSV(filepath.Join(dir, PinterestFile), pinRows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
