package generator

import (
    "context"
    "encoding/json"
)

// MockLLM answers locally with a well-formed, fenced reply. It never
// calls out, which makes it the provider for development and seeding.
type MockLLM struct{}

func (MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
    b, err := json.Marshal(Reply{
        GeneralTheme: "Editorial line drafted locally",
        WeeklyTheme:  "Weekly focus drafted locally",
        Body:         "Sample post written without a provider. Brief: " + firstLine(prompt.User),
    })
    if err != nil {
        return "", err
    }
    return "```json\n" + string(b) + "\n```", nil
}
