package http

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type missingParamError struct {
	param string
}

func (e missingParamError) Error() string {
	return fmt.Sprintf("%s is required", e.param)
}

func errMissingParam(param string) error {
	return missingParamError{param: param}
}

// fieldErrors turns a binding or parameter failure into a structured list
// the AI orchestrator can branch on, one entry per offending field.
func fieldErrors(err error) []gin.H {
	switch e := err.(type) {
	case validator.ValidationErrors:
		out := make([]gin.H, 0, len(e))
		for _, fe := range e {
			out = append(out, gin.H{
				"field":   strings.ToLower(fe.Field()),
				"message": "failed validation: " + fe.Tag(),
			})
		}
		return out
	case missingParamError:
		return []gin.H{{"field": e.param, "message": e.Error()}}
	default:
		return []gin.H{{"field": "body", "message": err.Error()}}
	}
}
