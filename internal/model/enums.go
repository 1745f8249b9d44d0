// internal/model/enums.go
package model

import "fmt"

type Channel string

const (
    ChannelLinkedIn  Channel = "LinkedIn"
    ChannelFacebook  Channel = "Facebook"
    ChannelInstagram Channel = "Instagram"
    ChannelTikTok    Channel = "TikTok"
    ChannelMail      Channel = "Mail"
)

// Channels lists every channel in batch order.
func Channels() []Channel {
    return []Channel{ChannelLinkedIn, ChannelFacebook, ChannelInstagram, ChannelTikTok, ChannelMail}
}

func (c Channel) Valid() bool {
    for _, known := range Channels() {
        if c == known {
            return true
        }
    }
    return false
}

func ParseChannel(s string) (Channel, error) {
    c := Channel(s)
    if !c.Valid() {
        return "", fmt.Errorf("unknown channel %q", s)
    }
    return c, nil
}

// ProspectTier is how mature a prospect is. Wire values are the French
// labels already used by stored data and downstream exports.
type ProspectTier string

const (
    TierLowQualified    ProspectTier = "Peu qualifié"
    TierQualified       ProspectTier = "Qualifié"
    TierHighlyQualified ProspectTier = "Hautement qualifié"
)

func ProspectTiers() []ProspectTier {
    return []ProspectTier{TierLowQualified, TierQualified, TierHighlyQualified}
}

func (t ProspectTier) Valid() bool {
    for _, known := range ProspectTiers() {
        if t == known {
            return true
        }
    }
    return false
}

func ParseProspectTier(s string) (ProspectTier, error) {
    t := ProspectTier(s)
    if !t.Valid() {
        return "", fmt.Errorf("unknown prospect tier %q", s)
    }
    return t, nil
}
