// internal/model/content.go
package model

import "time"

// Content is one generated editorial record as stored in generated_contents.
type Content struct {
    ID             int64        `db:"id" json:"id"`
    Channel        Channel      `db:"channel" json:"channel"`
    ProspectTier   ProspectTier `db:"prospect_tier" json:"prospectTier"`
    GenerationDate Date         `db:"generation_date" json:"generationDate"`
    GeneralTheme   string       `db:"general_theme" json:"generalTheme"`
    WeeklyTheme    string       `db:"weekly_theme" json:"weeklyTheme"`
    Body           string       `db:"body" json:"body"`
    Used           int          `db:"used" json:"used"`
    CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
    UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// IsUsed reports whether the record was marked as consumed.
func (c Content) IsUsed() bool {
    return c.Used != 0
}

// GenerationRequest is what a caller asks the generator for.
type GenerationRequest struct {
    Channel      Channel      `json:"channel"`
    ProspectTier ProspectTier `json:"prospectTier"`
    Date         Date         `json:"date"`
}

// ContentFilter narrows ListAll. Nil fields are not applied.
type ContentFilter struct {
    Channel      *Channel
    ProspectTier *ProspectTier
    StartDate    *Date
    EndDate      *Date
}

// Matches applies the filter to a single record.
func (f ContentFilter) Matches(c Content) bool {
    if f.Channel != nil && c.Channel != *f.Channel {
        return false
    }
    if f.ProspectTier != nil && c.ProspectTier != *f.ProspectTier {
        return false
    }
    if f.StartDate != nil && c.GenerationDate.Before(*f.StartDate) {
        return false
    }
    if f.EndDate != nil && f.EndDate.Before(c.GenerationDate) {
        return false
    }
    return true
}
