// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.  Load calls validateStruct
// once defaults are applied; any failure aborts startup.
package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

func validateStruct(c *Config) error {
    return v.Struct(c)
}
