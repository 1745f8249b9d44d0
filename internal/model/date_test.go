package model_test

import (
    "encoding/json"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/unclebandit/editorial-content-service/internal/model"
)

func TestParseDate(t *testing.T) {
    d, err := model.ParseDate("2025-03-14")
    require.NoError(t, err)
    assert.Equal(t, "2025-03-14", d.String())

    for _, bad := range []string{"", "2025-13-01", "14/03/2025", "2025-02-30", "2025-03-14T10:00:00Z"} {
        _, err := model.ParseDate(bad)
        assert.Error(t, err, bad)
    }
}

func TestDateJSON(t *testing.T) {
    var req model.GenerationRequest
    err := json.Unmarshal([]byte(`{"channel":"Mail","prospectTier":"Qualifié","date":"2025-01-06"}`), &req)
    require.NoError(t, err)
    assert.Equal(t, model.ChannelMail, req.Channel)
    assert.Equal(t, model.NewDate(2025, time.January, 6), req.Date)

    out, err := json.Marshal(req)
    require.NoError(t, err)
    assert.JSONEq(t, `{"channel":"Mail","prospectTier":"Qualifié","date":"2025-01-06"}`, string(out))

    assert.Error(t, json.Unmarshal([]byte(`{"date":"06-01-2025"}`), &req))
}

func TestDateScan(t *testing.T) {
    var d model.Date
    require.NoError(t, d.Scan(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)))
    assert.Equal(t, "2025-05-02", d.String())

    require.NoError(t, d.Scan([]byte("2024-12-31T00:00:00Z")))
    assert.Equal(t, "2024-12-31", d.String())

    assert.Error(t, d.Scan(42))

    v, err := d.Value()
    require.NoError(t, err)
    assert.Equal(t, "2024-12-31", v)
}

func TestFilterMatches(t *testing.T) {
    start := model.NewDate(2025, 1, 1)
    end := model.NewDate(2025, 1, 7)
    ch := model.ChannelTikTok
    f := model.ContentFilter{Channel: &ch, StartDate: &start, EndDate: &end}

    in := model.Content{Channel: model.ChannelTikTok, GenerationDate: end}
    assert.True(t, f.Matches(in), "end bound is inclusive")
    assert.True(t, f.Matches(model.Content{Channel: model.ChannelTikTok, GenerationDate: start}))
    assert.False(t, f.Matches(model.Content{Channel: model.ChannelMail, GenerationDate: start}))
    assert.False(t, f.Matches(model.Content{Channel: model.ChannelTikTok, GenerationDate: model.NewDate(2025, 1, 8)}))
}

func TestParseEnums(t *testing.T) {
    c, err := model.ParseChannel("Instagram")
    require.NoError(t, err)
    assert.Equal(t, model.ChannelInstagram, c)
    _, err = model.ParseChannel("instagram")
    assert.Error(t, err)

    tier, err := model.ParseProspectTier("Hautement qualifié")
    require.NoError(t, err)
    assert.Equal(t, model.TierHighlyQualified, tier)
    _, err = model.ParseProspectTier("Very hot")
    assert.Error(t, err)

    assert.Len(t, model.Channels(), 5)
    assert.Len(t, model.ProspectTiers(), 3)
}
