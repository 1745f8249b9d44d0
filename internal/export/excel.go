// Package export renders stored contents as an xlsx workbook.
package export

import (
    "bytes"
    "fmt"
    "unicode/utf8"

    "github.com/xuri/excelize/v2"

    "github.com/unclebandit/editorial-content-service/internal/model"
)

const (
    ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

    AllContentsSheet = "All contents"
    StatisticsSheet  = "Statistics"

    // xlsx refuses sheet names longer than this.
    maxSheetNameLen = 31
)

var contentHeader = []any{
    "ID", "Channel", "Prospect tier", "Generation date", "General theme",
    "Weekly theme", "Body", "Used", "Created at",
}

// Filename is the attachment name for an export produced at the given
// timestamp (formatted YYYYMMDD_HHMMSS).
func Filename(stamp string) string {
    return fmt.Sprintf("editorial-contents_%s.xlsx", stamp)
}

// ChannelSheetName is the per-channel sheet title.
func ChannelSheetName(ch model.Channel) string {
    name := "Content " + string(ch)
    if utf8.RuneCountInString(name) <= maxSheetNameLen {
        return name
    }
    return string([]rune(name)[:maxSheetNameLen])
}

// Workbook builds the document: every record, one sheet per channel in
// first-seen order, and a statistics summary.
func Workbook(contents []model.Content) ([]byte, error) {
    f := excelize.NewFile()
    defer f.Close()

    if err := f.SetSheetName("Sheet1", AllContentsSheet); err != nil {
        return nil, err
    }
    if err := writeContents(f, AllContentsSheet, contents); err != nil {
        return nil, err
    }

    var order []model.Channel
    byChannel := map[model.Channel][]model.Content{}
    for _, c := range contents {
        if _, seen := byChannel[c.Channel]; !seen {
            order = append(order, c.Channel)
        }
        byChannel[c.Channel] = append(byChannel[c.Channel], c)
    }
    for _, ch := range order {
        name := ChannelSheetName(ch)
        if _, err := f.NewSheet(name); err != nil {
            return nil, fmt.Errorf("create sheet %q: %w", name, err)
        }
        if err := writeContents(f, name, byChannel[ch]); err != nil {
            return nil, err
        }
    }

    if _, err := f.NewSheet(StatisticsSheet); err != nil {
        return nil, err
    }
    if err := writeRows(f, StatisticsSheet, statisticsRows(contents)); err != nil {
        return nil, err
    }

    f.SetActiveSheet(0)

    var buf bytes.Buffer
    if err := f.Write(&buf); err != nil {
        return nil, fmt.Errorf("write workbook: %w", err)
    }
    return buf.Bytes(), nil
}

func writeContents(f *excelize.File, sheet string, contents []model.Content) error {
    rows := make([][]any, 0, len(contents)+1)
    rows = append(rows, contentHeader)
    for _, c := range contents {
        used := "No"
        if c.IsUsed() {
            used = "Yes"
        }
        rows = append(rows, []any{
            c.ID,
            string(c.Channel),
            string(c.ProspectTier),
            c.GenerationDate.String(),
            c.GeneralTheme,
            c.WeeklyTheme,
            c.Body,
            used,
            c.CreatedAt.Format("2006-01-02 15:04:05"),
        })
    }
    if err := writeRows(f, sheet, rows); err != nil {
        return err
    }
    return f.SetColWidth(sheet, "E", "G", 40)
}

func statisticsRows(contents []model.Content) [][]any {
    used := 0
    channels := map[model.Channel]struct{}{}
    tiers := map[model.ProspectTier]struct{}{}
    for _, c := range contents {
        if c.IsUsed() {
            used++
        }
        channels[c.Channel] = struct{}{}
        tiers[c.ProspectTier] = struct{}{}
    }
    return [][]any{
        {"Metric", "Value"},
        {"Total contents", len(contents)},
        {"Used contents", used},
        {"Unused contents", len(contents) - used},
        {"Distinct channels", len(channels)},
        {"Distinct prospect tiers", len(tiers)},
    }
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
    for i, row := range rows {
        cell, err := excelize.CoordinatesToCellName(1, i+1)
        if err != nil {
            return err
        }
        if err := f.SetSheetRow(sheet, cell, &row); err != nil {
            return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
        }
    }
    return nil
}
