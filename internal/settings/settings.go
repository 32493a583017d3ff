// Package settings holds the display preferences and their bounds.
package settings

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Bounds and steps of the adjustable settings.
const (
	MinCardWidth  = 400
	MaxCardWidth  = 1400
	CardWidthStep = 50

	MinFontSize = 12
	MaxFontSize = 24

	MinPadding = 1
	MaxPadding = 5
)

// Settings is the persisted display configuration.
type Settings struct {
	CardWidth       int  `json:"cardWidth" validate:"gte=400,lte=1400"`
	FontSize        int  `json:"fontSize" validate:"gte=12,lte=24"`
	CardPadding     int  `json:"cardPadding" validate:"gte=1,lte=5"`
	ShowFrequency   bool `json:"showFrequency"`
	TwoColumnLayout bool `json:"twoColumnLayout"`
}

var validate = validator.New()

// Defaults returns the settings used when nothing valid is stored.
func Defaults() Settings {
	return Settings{
		CardWidth:     800,
		FontSize:      16,
		CardPadding:   2,
		ShowFrequency: true,
	}
}

// Validate returns an error naming every out-of-range field.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("%s: %v fails %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return errors.Join(msgs...)
}

// Sanitize replaces every invalid field with its default and leaves valid
// fields alone.
func (s Settings) Sanitize() Settings {
	err := validate.Struct(s)
	if err == nil {
		return s
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Defaults()
	}
	def := Defaults()
	for _, fe := range verrs {
		switch fe.StructField() {
		case "CardWidth":
			s.CardWidth = def.CardWidth
		case "FontSize":
			s.FontSize = def.FontSize
		case "CardPadding":
			s.CardPadding = def.CardPadding
		}
	}
	return s
}

// Field identifies an adjustable numeric setting.
type Field int

const (
	FieldCardWidth Field = iota
	FieldFontSize
	FieldCardPadding
)

// Adjust moves a numeric field by steps, clamped to its bounds.
func (s Settings) Adjust(f Field, steps int) Settings {
	switch f {
	case FieldCardWidth:
		s.CardWidth = clamp(s.CardWidth+steps*CardWidthStep, MinCardWidth, MaxCardWidth)
	case FieldFontSize:
		s.FontSize = clamp(s.FontSize+steps, MinFontSize, MaxFontSize)
	case FieldCardPadding:
		s.CardPadding = clamp(s.CardPadding+steps, MinPadding, MaxPadding)
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
