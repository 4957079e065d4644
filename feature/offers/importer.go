package offers

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"hookmap/core/utils"
	"hookmap/feature/offers/models"

	"github.com/google/uuid"
)

var numericID = regexp.MustCompile(`^\d+$`)

// headerAliases maps the column names seen in marketplace exports to the
// canonical field. Matching is case-insensitive after trimming.
var headerAliases = map[string]string{
	"id":          "external_id",
	"offer id":    "external_id",
	"external_id": "external_id",
	"title":       "title",
	"name":        "title",
	"model":       "model",
	"wiring":      "wiring",
	"price":       "price",
	"qty":         "qty",
	"quantity":    "qty",
	"stock":       "qty",
	"status":      "status",
	"link":        "link",
	"url":         "link",
}

// ImportStats summarizes one CSV parse.
type ImportStats struct {
	Rows    int `json:"rows"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
}

// ParseCSV reads a marketplace export. The first record is a header; columns
// are matched by name, unknown columns are ignored. Rows without a purely
// numeric external id are counted as skipped, as are short rows. Semicolon
// and comma delimited files are both accepted.
func ParseCSV(r io.Reader, account string) ([]models.MarketplaceListing, ImportStats, error) {
	br := newDelimiterSniffer(r)
	cr := csv.NewReader(br)
	cr.Comma = br.delimiter()
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ImportStats{}, fmt.Errorf("failed to read header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if field, ok := headerAliases[name]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["external_id"]; !ok {
		return nil, ImportStats{}, fmt.Errorf("no external id column in header %v", header)
	}

	var (
		rows  []models.MarketplaceListing
		stats ImportStats
		now   = time.Now()
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read record: %w", err)
		}
		stats.Rows++

		externalID := strings.TrimSpace(field(record, cols, "external_id"))
		if !numericID.MatchString(externalID) {
			stats.Skipped++
			continue
		}

		rows = append(rows, models.MarketplaceListing{
			ID:             uuid.NewString(),
			Account:        account,
			ExternalID:     externalID,
			Title:          utils.ToString(field(record, cols, "title")),
			ExternalModel:  strings.TrimSpace(field(record, cols, "model")),
			ExternalWiring: strings.TrimSpace(field(record, cols, "wiring")),
			Price:          utils.ToFloat(field(record, cols, "price")),
			Qty:            utils.ToInt(field(record, cols, "qty")),
			Status:         strings.TrimSpace(field(record, cols, "status")),
			Link:           strings.TrimSpace(field(record, cols, "link")),
			SyncedAt:       now,
		})
		stats.Parsed++
	}
	return rows, stats, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// delimiterSniffer buffers the first line to decide between semicolon and
// comma delimited input.
type delimiterSniffer struct {
	r    io.Reader
	head []byte
	err  error
}

func newDelimiterSniffer(r io.Reader) *delimiterSniffer {
	s := &delimiterSniffer{r: r}
	buf := make([]byte, 4096)
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	s.head = buf[:n]
	s.err = err
	return s
}

func (s *delimiterSniffer) delimiter() rune {
	line := string(s.head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func (s *delimiterSniffer) Read(p []byte) (int, error) {
	if len(s.head) > 0 {
		n := copy(p, s.head)
		s.head = s.head[n:]
		return n, nil
	}
	if s.err != nil {
		return 0, s.err
	}
	return s.r.Read(p)
}
