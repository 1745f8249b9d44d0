package generator

import (
    "fmt"
    "strings"

    "github.com/unclebandit/editorial-content-service/internal/model"
)

const systemPrompt = "You are an expert in digital marketing and editorial content creation. Answer with valid JSON only."

// BuildPrompt renders the request into the provider prompt. The reply keys
// are fixed: theme_general, theme_hebdo and texte.
func BuildPrompt(req model.GenerationRequest) Prompt {
    var sb strings.Builder
    fmt.Fprintf(&sb, "Write editorial content for channel %s, prospect tier %s, date %s.\n", req.Channel, req.ProspectTier, req.Date)
    sb.WriteString("Reply only with a JSON object holding:\n")
    sb.WriteString("{\n")
    fmt.Fprintf(&sb, "  \"theme_general\": \"main editorial line suited to %s\",\n", req.Channel)
    fmt.Fprintf(&sb, "  \"theme_hebdo\": \"editorial focus for the week of %s\",\n", req.Date)
    fmt.Fprintf(&sb, "  \"texte\": \"ready to publish copy matching the %s level\"\n", req.ProspectTier)
    sb.WriteString("}\n")
    fmt.Fprintf(&sb, "The content must be relevant for %s prospects on %s.", req.ProspectTier, req.Channel)

    return Prompt{System: systemPrompt, User: sb.String()}
}

func firstLine(s string) string {
    if i := strings.IndexByte(s, '\n'); i >= 0 {
        return s[:i]
    }
    return s
}
