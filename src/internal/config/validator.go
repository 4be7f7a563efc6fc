package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
)

// Paths served by the admin API; mounts must not shadow them.
var reservedPrefixes = []string{"/api/v1", "/metrics"}

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.Server == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "server",
			Message:   "configuration must contain 'server' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.Server); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "server", "")...)
	}

	if c.Server.RateLimit != nil {
		if err := validate.Struct(c.Server.RateLimit); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "server.rate_limit", "")...)
		}
	}

	if len(c.Mounts) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "mount",
			Message:   "configuration must contain at least one mount",
		})
	} else {
		validationErrors = append(validationErrors, c.validateMounts()...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateMounts() ValidationErrors {
	var validationErrors ValidationErrors
	seenPrefixes := make(map[string]bool)
	adminEnabled := c.Admin != nil && (c.Admin.Enable || c.Admin.Metrics)

	for i, mount := range c.Mounts {
		itemName := mount.Prefix
		if itemName == "" {
			itemName = fmt.Sprintf("mount[%d]", i)
		}

		if err := validate.Struct(mount); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("mount.%d", i), itemName)...)
			continue
		}

		prefix := mount.NormalizedPrefix()

		// Check duplicate prefix
		if seenPrefixes[prefix] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "prefix",
				Message:   fmt.Sprintf("duplicate mount prefix: %s", mount.Prefix),
			})
		}
		seenPrefixes[prefix] = true

		if adminEnabled {
			for _, reserved := range reservedPrefixes {
				if prefix == reserved || strings.HasPrefix(prefix, reserved+"/") {
					validationErrors = append(validationErrors, ValidationError{
						ItemName:  itemName,
						FieldPath: "prefix",
						Message:   fmt.Sprintf("prefix %s is reserved by the admin API", reserved),
					})
				}
			}
		}

		if mount.FallbackMode() == FallbackIndex && strings.Trim(mount.IndexFile, "/") == "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "index_file",
				Message:   "fallback \"index\" requires index_file",
			})
		}

		if mount.FallbackMode() == FallbackTemplate {
			if mount.FallbackTemplate == "" {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "fallback_template",
					Message:   "fallback \"template\" requires fallback_template",
				})
			} else if _, err := fasttemplate.NewTemplate(mount.FallbackTemplate, "{{", "}}"); err != nil {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "fallback_template",
					Message:   "placeholder is not closed with '}}'",
				})
			}
		}

		// Validate directory exists if specified
		if mount.Dir != "" {
			dir := c.GetAbsMountDir(mount)
			if info, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "dir",
					Message:   fmt.Sprintf("directory does not exist: %s", dir),
				})
			} else if err == nil && !info.IsDir() {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "dir",
					Message:   fmt.Sprintf("not a directory: %s", dir),
				})
			}
		}
	}

	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
