// This file adds a lightweight linter/validator for Config values. Struct-tag
// rules are checked with go-playground/validator; cross-field rules that tags
// cannot express are checked by hand. The result is a list of issues (errors
// and warnings) that callers can surface in a CLI or tests.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Config.
//
// Path is a dotted path into the config (e.g. "storage.kind"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is severe enough to block execution.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their conf tag so issue paths match flag names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("conf")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate performs static validation of a Config.
//
// It does not mutate the config. Instead it returns a slice of Issue values;
// callers decide whether to treat warnings as fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     fe.Field(),
					Message:  tagMessage(fe),
				})
			}
		} else {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "config",
				Message:  err.Error(),
			})
		}
	}

	// Cross-field rules the struct tags cannot express.
	if c.Storage.Kind != "" && strings.TrimSpace(c.Storage.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  fmt.Sprintf("storage kind %q requires a DSN", c.Storage.Kind),
		})
	}
	if c.Storage.Kind == "" && c.Storage.DSN != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  "a DSN is set but no storage kind; the database sink is disabled",
		})
	}
	if c.Metrics.Backend == "prompush" && strings.TrimSpace(c.Metrics.PushgatewayURL) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.pushgateway_url",
			Message:  "the prompush backend requires a Pushgateway URL",
		})
	}
	if c.Metrics.Backend == "datadog" && strings.TrimSpace(c.Metrics.DogstatsdAddr) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.dogstatsd_addr",
			Message:  "the datadog backend requires a DogStatsD address",
		})
	}
	if c.Input != "" && c.Input == c.Output {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output",
			Message:  "output path must differ from the input path",
		})
	}
	if c.TargetRows == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "target_rows",
			Message:  "target_rows is 0; the golden dataset will not be trimmed",
		})
	}

	return issues
}

// tagMessage renders a human-readable message for a failed struct-tag rule.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " must not be empty"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed rule %q", fe.Field(), fe.Tag())
	}
}
