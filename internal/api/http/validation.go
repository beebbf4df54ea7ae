package http

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/GriffinCanCode/polyprec/internal/types"
)

// Request limits
const (
	MaxParams       = 32
	MaxParamsDepth  = 4
	MaxStringLength = 64 * 1024
	MaxToolIDLength = 128
)

var toolIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)

var knownCategories = map[types.Category]bool{
	types.CategoryMath: true,
}

// ValidateToolID checks a "service.tool" identifier
func ValidateToolID(toolID string) error {
	if toolID == "" {
		return fmt.Errorf("tool_id is required")
	}
	if len(toolID) > MaxToolIDLength {
		return fmt.Errorf("tool_id exceeds %d characters", MaxToolIDLength)
	}
	if !toolIDPattern.MatchString(toolID) {
		return fmt.Errorf("tool_id %q must look like service.tool", toolID)
	}
	return nil
}

// ValidateCategory checks a category filter
func ValidateCategory(category string) error {
	if !knownCategories[types.Category(category)] {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// ValidateParams bounds the size and nesting of tool parameters
func ValidateParams(params map[string]interface{}) error {
	if len(params) > MaxParams {
		return fmt.Errorf("too many params: %d exceeds maximum %d", len(params), MaxParams)
	}
	return checkDepth(params, 0, MaxParamsDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("params nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case string:
		if len(v) > MaxStringLength {
			return fmt.Errorf("string param of %d bytes exceeds maximum %d", len(v), MaxStringLength)
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("string param is not valid UTF-8")
		}
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}
