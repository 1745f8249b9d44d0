package generator

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/santhosh-tekuri/jsonschema/v5"
)

// Reply is the structured answer expected from the provider.
type Reply struct {
    GeneralTheme string `json:"theme_general"`
    WeeklyTheme  string `json:"theme_hebdo"`
    Body         string `json:"texte"`
}

var replySchemaJSON = []byte(`{
  "type": "object",
  "required": ["theme_general", "theme_hebdo", "texte"],
  "properties": {
    "theme_general": {"type": "string", "minLength": 1, "pattern": "\\S"},
    "theme_hebdo":   {"type": "string", "minLength": 1, "pattern": "\\S"},
    "texte":         {"type": "string", "minLength": 1, "pattern": "\\S"}
  }
}`)

var replySchema = mustCompileReplySchema()

func mustCompileReplySchema() *jsonschema.Schema {
    compiler := jsonschema.NewCompiler()
    if err := compiler.AddResource("reply.json", bytes.NewReader(replySchemaJSON)); err != nil {
        panic(fmt.Sprintf("load reply schema: %v", err))
    }
    schema, err := compiler.Compile("reply.json")
    if err != nil {
        panic(fmt.Sprintf("compile reply schema: %v", err))
    }
    return schema
}

var ErrEmptyReply = errors.New("empty reply")

// ParseReply decodes a provider answer. A surrounding Markdown code fence
// is tolerated; anything that is not a JSON object with the three
// non-blank string fields is rejected.
func ParseReply(raw string) (Reply, error) {
    text := strings.TrimSpace(raw)
    if unfenced := stripCodeFences(text); unfenced != "" {
        text = unfenced
    }
    if text == "" {
        return Reply{}, ErrEmptyReply
    }

    var doc any
    if err := json.Unmarshal([]byte(text), &doc); err != nil {
        return Reply{}, fmt.Errorf("reply is not JSON: %w", err)
    }
    if err := replySchema.Validate(doc); err != nil {
        return Reply{}, fmt.Errorf("reply does not match schema: %w", err)
    }

    var r Reply
    if err := json.Unmarshal([]byte(text), &r); err != nil {
        return Reply{}, fmt.Errorf("decode reply: %w", err)
    }
    r.GeneralTheme = strings.TrimSpace(r.GeneralTheme)
    r.WeeklyTheme = strings.TrimSpace(r.WeeklyTheme)
    r.Body = strings.TrimSpace(r.Body)
    return r, nil
}

// stripCodeFences returns the inside of a ``` or ```json block, or ""
// when content is not fenced.
func stripCodeFences(content string) string {
    trimmed := strings.TrimSpace(content)
    if !strings.HasPrefix(trimmed, "```") {
        return ""
    }

    body := strings.TrimPrefix(trimmed, "```")
    if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
        body = body[4:]
    }
    body = strings.TrimSpace(body)
    body = strings.TrimSuffix(body, "```")
    return strings.TrimSpace(body)
}
