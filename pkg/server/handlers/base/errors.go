package base

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldErrorDescr describes single invalid field: where it comes from (body, query, path),
// field name and human readable message
type FieldErrorDescr struct {
	Input   string `json:"input"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ErrorView renderable error representation, implements error so handlers may return it directly
type ErrorView struct {
	Code    int               `json:"-"`
	Message string            `json:"message"`
	Fields  []FieldErrorDescr `json:"fields,omitempty"`
}

// Error implements error
func (e ErrorView) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d invalid fields)", e.Message, len(e.Fields))
}

// NewErrorsView creates 400 fields-holding error view, message may be omitted
func NewErrorsView(message string) ErrorView {
	if message == "" {
		message = "wrong parameters"
	}
	return ErrorView{Code: http.StatusBadRequest, Message: message}
}

// AddField returns copy of this view with field error appended
func (e ErrorView) AddField(input, name, message string) ErrorView {
	return e.AddFieldDescr(FieldErrorDescr{Input: input, Name: name, Message: message})
}

// AddFieldDescr returns copy of this view with field error appended
func (e ErrorView) AddFieldDescr(descr FieldErrorDescr) ErrorView {
	fields := make([]FieldErrorDescr, len(e.Fields), len(e.Fields)+1)
	copy(fields, e.Fields)
	e.Fields = append(fields, descr)
	return e
}

// NewFieldErr shortcut for single field error view
func NewFieldErr(input, name, message string) ErrorView {
	return NewErrorsView("").AddField(input, name, message)
}

// ShouldBindJSON binds json body into dst coercing validator errors into fields view. Returned
// fErr is filled (and equal to err) when binding failed due to invalid fields, so caller may
// inspect and extend it.
func ShouldBindJSON(c *gin.Context, dst interface{}) (fErr ErrorView, err error) {
	err = c.ShouldBindJSON(dst)
	if err == nil {
		return
	}

	if vErrs, ok := errors.Cause(err).(validator.ValidationErrors); ok {
		fErr = NewErrorsView("")
		for _, f := range vErrs {
			fErr = fErr.AddField("body", lowerFirst(f.Field()), fmt.Sprintf("violates %q rule", f.Tag()))
		}
		err = fErr
		return
	}

	fErr = NewErrorsView("invalid json body")
	err = fErr
	return
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
