// internal/controller/content_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"
    "go.uber.org/zap"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/export"
    "github.com/unclebandit/editorial-content-service/internal/model"
    "github.com/unclebandit/editorial-content-service/internal/service"
)

type ContentController struct {
    ContentService *service.ContentService
    Log            *zap.SugaredLogger

    // Now stamps export file names; time.Now when nil.
    Now func() time.Time
}

type generateContentBody struct {
    Channel      string `json:"channel" validate:"required,channel"`
    ProspectTier string `json:"prospectTier" validate:"required,prospect_tier"`
    Date         string `json:"date" validate:"required,datetime=2006-01-02"`
}

type contentQuery struct {
    Channel      string `json:"channel" validate:"omitempty,channel"`
    ProspectTier string `json:"prospectTier" validate:"omitempty,prospect_tier"`
    StartDate    string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
    EndDate      string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

func (c *ContentController) GenerateContent(w http.ResponseWriter, r *http.Request) {
    var body generateContentBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        c.fail(w, "generate content", appErrors.NewValidation("body", "must be a JSON object"))
        return
    }
    if err := validate.Struct(body); err != nil {
        c.fail(w, "generate content", validationError(err))
        return
    }

    date, _ := model.ParseDate(body.Date)
    req := model.GenerationRequest{
        Channel:      model.Channel(body.Channel),
        ProspectTier: model.ProspectTier(body.ProspectTier),
        Date:         date,
    }

    content, err := c.ContentService.GenerateContent(r.Context(), req)
    if err != nil {
        c.fail(w, "generate content", err)
        return
    }
    writeJSON(w, http.StatusOK, content)
}

func (c *ContentController) GenerateBatch(w http.ResponseWriter, r *http.Request) {
    raw := r.URL.Query().Get("date")
    if err := validate.Var(raw, "required,datetime=2006-01-02"); err != nil {
        c.fail(w, "generate content batch", appErrors.NewValidation("date", "must be a date formatted YYYY-MM-DD"))
        return
    }
    date, _ := model.ParseDate(raw)

    contents, err := c.ContentService.GenerateBatch(r.Context(), date)
    if err != nil {
        c.fail(w, "generate content batch", err)
        return
    }
    writeJSON(w, http.StatusOK, contents)
}

func (c *ContentController) ListContents(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()

    filter, err := parseFilter(q)
    if err != nil {
        c.fail(w, "list contents", err)
        return
    }
    limit, err := intParam(q, "limit", service.DefaultPageLimit)
    if err != nil {
        c.fail(w, "list contents", err)
        return
    }
    offset, err := intParam(q, "offset", 0)
    if err != nil {
        c.fail(w, "list contents", err)
        return
    }

    page, err := c.ContentService.ListContents(r.Context(), filter, limit, offset)
    if err != nil {
        c.fail(w, "list contents", err)
        return
    }
    writeJSON(w, http.StatusOK, page)
}

func (c *ContentController) ExportExcel(w http.ResponseWriter, r *http.Request) {
    filter, err := parseFilter(r.URL.Query())
    if err != nil {
        c.fail(w, "export contents", err)
        return
    }

    doc, err := c.ContentService.ExportContents(r.Context(), filter)
    if err != nil {
        c.fail(w, "export contents", err)
        return
    }

    now := time.Now
    if c.Now != nil {
        now = c.Now
    }
    name := export.Filename(now().Format("20060102_150405"))

    w.Header().Set("Content-Type", export.ContentType)
    w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
    w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
    w.WriteHeader(http.StatusOK)
    if _, err := w.Write(doc); err != nil {
        c.Log.Warnw("export stream interrupted", "file", name, "err", err)
    }
}

func (c *ContentController) ListUnused(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, c.ContentService.ListUnused(r.Context()))
}

func (c *ContentController) MarkUsed(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
    if err != nil || id <= 0 {
        c.fail(w, "mark content used", appErrors.NewValidation("id", "must be a positive integer"))
        return
    }

    if err := c.ContentService.MarkUsed(r.Context(), id); err != nil {
        c.fail(w, "mark content used", err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"id": id, "used": 1})
}

// fail maps an error onto its status. Internal details stay in the log.
func (c *ContentController) fail(w http.ResponseWriter, op string, err error) {
    var ve *appErrors.ValidationError
    switch {
    case errors.As(err, &ve):
        writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: ve.Fields})
    case appErrors.IsNotFound(err):
        writeError(w, http.StatusNotFound, err.Error())
    default:
        c.Log.Errorw("request failed", "op", op, "err", err)
        writeError(w, http.StatusInternalServerError, "failed to "+op)
    }
}

func parseFilter(q url.Values) (model.ContentFilter, error) {
    raw := contentQuery{
        Channel:      q.Get("channel"),
        ProspectTier: q.Get("prospectTier"),
        StartDate:    q.Get("startDate"),
        EndDate:      q.Get("endDate"),
    }
    if err := validate.Struct(raw); err != nil {
        return model.ContentFilter{}, validationError(err)
    }

    var f model.ContentFilter
    if raw.Channel != "" {
        ch := model.Channel(raw.Channel)
        f.Channel = &ch
    }
    if raw.ProspectTier != "" {
        t := model.ProspectTier(raw.ProspectTier)
        f.ProspectTier = &t
    }
    if raw.StartDate != "" {
        d, _ := model.ParseDate(raw.StartDate)
        f.StartDate = &d
    }
    if raw.EndDate != "" {
        d, _ := model.ParseDate(raw.EndDate)
        f.EndDate = &d
    }
    return f, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
    raw := q.Get(key)
    if raw == "" {
        return def, nil
    }
    n, err := strconv.Atoi(raw)
    if err != nil {
        return 0, appErrors.NewValidation(key, "must be an integer")
    }
    return n, nil
}
