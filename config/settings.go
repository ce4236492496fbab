package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required setting", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})
}

// Settings holds the resolved configuration surface: flag values merged
// with environment variables and the optional config file.
type Settings struct {
	DataFile     string        `mapstructure:"data-file" validate:"required"`
	LogFile      string        `mapstructure:"log-file" validate:"required"`
	LogLevel     string        `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	CodeBlock    bool          `mapstructure:"code-block"`
	Naming       string        `mapstructure:"naming" validate:"oneof=default snake"`
	SaveInterval time.Duration `mapstructure:"save-interval" validate:"min=0"`
	Operations   []string      `mapstructure:"operations"`
}

// DecodeSettings builds validated Settings from a loosely typed settings
// map. Values sourced from flags, environment variables and config files
// all arrive as strings or primitive types, so durations and lists are
// decoded through string hooks.
func DecodeSettings(src map[string]interface{}) (Settings, error) {
	var settings Settings

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result: &settings,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(src); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return translateValidatorError(err)
	}
	return nil
}

// translateValidatorError converts validator's error map into a single
// readable error for the startup failure message.
func translateValidatorError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	translated := verrs.Translate(trans)
	vals := make([]string, 0, len(translated))
	for _, value := range translated {
		vals = append(vals, value)
	}
	return errors.New(strings.Join(vals, ", "))
}
