package middleware

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
)

var registerOnce sync.Once

// RegisterValidatorTagNames makes validation errors report json/form field names
// instead of Go struct field names.
func RegisterValidatorTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
}

// BindJSON binds and validates a JSON body, writing a 400 response on failure
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abortValidation(c, err)
		return false
	}
	return true
}

// BindForm binds and validates a multipart or urlencoded form, writing a 400 response on failure
func BindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		abortValidation(c, err)
		return false
	}
	return true
}

func abortValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
