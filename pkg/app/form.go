package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"

	"github.com/gin-gonic/gin"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins all messages into one string
// ErrorsToString 将所有错误信息拼接为一个字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString returns "key: message" pairs
// MapsToString 返回 "key: message" 形式的错误信息
func (v ValidErrors) MapsToString() string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Key+": "+err.Message)
	}
	return strings.Join(errs, "; ")
}

// BindAndValid binds request params and validates them, translating
// validator messages with the translator stored in gin.Context.
// BindAndValid 绑定请求参数并校验，使用 gin.Context 中的翻译器翻译校验消息
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans, exists := c.Get("trans")
		if !exists {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{
					Key:     verr.Field(),
					Message: verr.Error(),
				})
			}
			return false, errs
		}

		for key, value := range verrs.Translate(trans.(ut.Translator)) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}

	return true, nil
}
