package controller

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
    v := validator.New(validator.WithRequiredStructEnabled())

    // report fields by their wire name
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" || name == "" {
            return f.Name
        }
        return name
    })

    _ = v.RegisterValidation("channel", func(fl validator.FieldLevel) bool {
        _, err := model.ParseChannel(fl.Field().String())
        return err == nil
    })
    _ = v.RegisterValidation("prospect_tier", func(fl validator.FieldLevel) bool {
        _, err := model.ParseProspectTier(fl.Field().String())
        return err == nil
    })
    return v
}

// validationError turns validator output into the API error type.
func validationError(err error) error {
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        return err
    }
    fields := make(map[string]string, len(verrs))
    for _, fe := range verrs {
        fields[fe.Field()] = describe(fe)
    }
    return &appErrors.ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
    switch fe.Tag() {
    case "required":
        return "is required"
    case "channel":
        return fmt.Sprintf("must be one of %v", model.Channels())
    case "prospect_tier":
        return fmt.Sprintf("must be one of %v", model.ProspectTiers())
    case "datetime":
        return "must be a date formatted YYYY-MM-DD"
    }
    return "is invalid"
}
