package config

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min", "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	case "mount_prefix":
		return "must start with '/' and must not contain '..', '//', '*' or '{'"
	case "fallback_mode":
		return fmt.Sprintf("must be one of: %s, %s, %s", FallbackNotFound, FallbackIndex, FallbackTemplate)
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For mounts: the prefix (e.g., "/static")
	FieldPath string // Dot-notation field path (e.g., "server.listen_addr", "mount.0.fallback")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("mount_prefix", validateMountPrefixTag); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("fallback_mode", validateFallbackMode); err != nil {
		panic(err)
	}

	// Report field names as they appear in the TOML file
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}

// Custom validator: mount prefix format
func validateMountPrefixTag(fl validator.FieldLevel) bool {
	return IsValidMountPrefix(fl.Field().String())
}

// IsValidMountPrefix reports whether prefix can be mounted on the router.
func IsValidMountPrefix(prefix string) bool {
	if !strings.HasPrefix(prefix, "/") {
		return false
	}
	trimmed := strings.TrimRight(prefix, "/")
	if strings.Contains(trimmed, "//") || strings.ContainsAny(trimmed, "*{}") {
		return false
	}
	for _, segment := range strings.Split(trimmed, "/") {
		if segment == ".." || segment == "." {
			return false
		}
	}
	return true
}

// Custom validator: fallback mode
func validateFallbackMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case FallbackNotFound, FallbackIndex, FallbackTemplate:
		return true
	default:
		return false
	}
}
