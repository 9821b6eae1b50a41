// Package types provides type definitions for structured data used throughout the stylist expert system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Attribute names that rule conditions may reference.
const (
	AttrGender          = "gender"
	AttrAgeRange        = "age_range"
	AttrOccasion        = "occasion"
	AttrWeather         = "weather"
	AttrBodyType        = "body_type"
	AttrPreferredStyle  = "preferred_style"
	AttrColorPreference = "color_preference"
	AttrHeight          = "height"
)

// Attributes is the fixed attribute vocabulary in declaration order.
var Attributes = []string{
	AttrGender,
	AttrAgeRange,
	AttrOccasion,
	AttrWeather,
	AttrBodyType,
	AttrPreferredStyle,
	AttrColorPreference,
	AttrHeight,
}

// IsAttribute reports whether name belongs to the attribute vocabulary.
func IsAttribute(name string) bool {
	for _, attr := range Attributes {
		if attr == name {
			return true
		}
	}
	return false
}

// UserInput describes a person's preferences and context.
// Values are free-form strings; no enumerated values are enforced.
type UserInput struct {
	Gender          string `json:"gender" yaml:"gender" validate:"required"`
	AgeRange        string `json:"age_range,omitempty" yaml:"age_range,omitempty"`
	Occasion        string `json:"occasion" yaml:"occasion" validate:"required"`
	Weather         string `json:"weather" yaml:"weather" validate:"required"`
	BodyType        string `json:"body_type" yaml:"body_type" validate:"required"`
	PreferredStyle  string `json:"preferred_style" yaml:"preferred_style" validate:"required"`
	ColorPreference string `json:"color_preference,omitempty" yaml:"color_preference,omitempty"`
	Height          string `json:"height,omitempty" yaml:"height,omitempty"`
}

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the UserInput using the validator.
func (u *UserInput) Validate() error {
	return validate.Struct(u)
}

// Facts returns the normalized attribute map used for rule matching.
// Empty attributes are omitted so they can never satisfy a condition.
func (u UserInput) Facts() map[string]string {
	all := map[string]string{
		AttrGender:          u.Gender,
		AttrAgeRange:        u.AgeRange,
		AttrOccasion:        u.Occasion,
		AttrWeather:         u.Weather,
		AttrBodyType:        u.BodyType,
		AttrPreferredStyle:  u.PreferredStyle,
		AttrColorPreference: u.ColorPreference,
		AttrHeight:          u.Height,
	}

	facts := make(map[string]string, len(all))
	for key, value := range all {
		if value != "" {
			facts[key] = value
		}
	}
	return facts
}
