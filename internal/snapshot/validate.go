package snapshot

import (
	"database/sql/driver"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/volatiletech/null/v8"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names, matching the file the user edits.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Null scores validate as absent; present ones as plain float64.
	validate.RegisterCustomTypeFunc(nullableValue, null.Float64{})
}

func nullableValue(field reflect.Value) any {
	if valuer, ok := field.Interface().(driver.Valuer); ok {
		if v, err := valuer.Value(); err == nil {
			return v
		}
	}
	return nil
}

// fieldErrors renders validator errors as "path: message" lines.
func fieldErrors(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, path+": "+fe.Translate(translator))
	}
	return out
}
