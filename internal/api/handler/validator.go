package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
)

const msgInvalidJSON = "Invalid JSON data"

var registerOnce sync.Once

// RegisterValidators 向 gin 的 validator 注册自定义枚举校验，错误字段名取 json/form 标签
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("designation", func(fl validator.FieldLevel) bool {
			return model.IsValidDesignation(fl.Field().String())
		})
		_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return model.IsValidDepartment(fl.Field().String())
		})
	})
}

// bindErrorMessage 将绑定/校验错误转换为面向用户的提示
// 优先报告缺失的必填字段
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return service.MissingFieldError(fe.Field()).Error()
			}
		}
		return fieldErrorMessage(verrs[0])
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return msgInvalidJSON
	}
	return err.Error()
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure %s has at most %s characters.", fe.Field(), fe.Param())
	case "designation", "department":
		return fmt.Sprintf("Invalid %s: %v", fe.Tag(), fe.Value())
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}
