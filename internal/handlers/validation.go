package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

var swearWords = []string{"fuck", "shit"}

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator. Safe to
// call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		if err = v.RegisterValidation("noswear", noSwear); err != nil {
			return
		}
		if err = v.RegisterValidation("maxitems", maxItems); err != nil {
			return
		}
		err = v.RegisterValidation("maxitemlen", maxItemLen)
	})
	return err
}

// fieldName reports validation errors under the json or query name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func noSwear(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, w := range swearWords {
		if strings.Contains(value, w) {
			return false
		}
	}
	return true
}

// maxItems limits a whitespace separated list, such as tags.
func maxItems(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(services.SplitWords(fl.Field().String())) <= limit
}

// maxItemLen limits the length in characters of every item of such a list.
func maxItemLen(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	for _, item := range services.SplitWords(fl.Field().String()) {
		if utf8.RuneCountInString(item) > limit {
			return false
		}
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("Ensure this field has at least %s items.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	case "alphanumunicode":
		return "Only letters and digits are allowed."
	case "noswear":
		return "Company name contains swear words."
	case "maxitems":
		return fmt.Sprintf("Max number of items is %s.", fe.Param())
	case "maxitemlen":
		return fmt.Sprintf("Ensure each item has no more than %s characters.", fe.Param())
	}
	return "Invalid value."
}

func validationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func respondInvalid(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, dtos.MessageResponse{Message: "Provided invalid data.", Errors: errs})
}

func respondBindError(c *gin.Context, err error) {
	if errs := validationErrors(err); errs != nil {
		respondInvalid(c, errs)
		return
	}
	respondMessage(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
