package menu

import "strings"

const (
	// Sentinel marks a meal that is not served or has no data.
	Sentinel = "미운영"
	// Delimiter separates the text fragments of one cell.
	Delimiter = "&"
)

// Record is one calendar day of the cafeteria schedule.
type Record struct {
	Date      string `json:"date"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// Fields returns the record in column order: date, breakfast, lunch, dinner.
func (r Record) Fields() []string {
	return []string{r.Date, r.Breakfast, r.Lunch, r.Dinner}
}

// JoinCell trims each fragment, drops the blank ones and joins the rest
// with Delimiter. A cell with no text yields Sentinel.
func JoinCell(fragments []string) string {
	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if t := strings.TrimSpace(f); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return Sentinel
	}
	return strings.Join(texts, Delimiter)
}

// Assemble maps a row onto a Record. Missing cells become Sentinel and
// cells past the third are ignored.
func Assemble(row Row) Record {
	meal := func(i int) string {
		if i < len(row.Cells) {
			return JoinCell(row.Cells[i])
		}
		return Sentinel
	}
	return Record{
		Date:      strings.TrimSpace(row.Label),
		Breakfast: meal(0),
		Lunch:     meal(1),
		Dinner:    meal(2),
	}
}
