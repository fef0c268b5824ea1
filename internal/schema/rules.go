package schema

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/shopspring/decimal"
)

var (
	measureRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	countRe   = regexp.MustCompile(`^\d+$`)
	yearRe    = regexp.MustCompile(`^\d{4}$`)
	phoneRe   = regexp.MustCompile(`^(\+62|62|0)8\d{7,12}$`)
)

// MinYear is the earliest accepted construction year
const MinYear = 1900

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"lat":            coordinateRule(90),
		"lon":            coordinateRule(180),
		"measure_pos":    measureRule(true),
		"measure_nonneg": measureRule(false),
		"count":          patternRule(countRe),
		"year":           yearRule,
		"phone_id":       phoneRule,
		"category":       categoryRule,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// ValidLatitude reports whether s parses to a finite number in [-90, 90]
func ValidLatitude(s string) bool { return inRange(s, 90) }

// ValidLongitude reports whether s parses to a finite number in [-180, 180]
func ValidLongitude(s string) bool { return inRange(s, 180) }

func inRange(s string, limit float64) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= -limit && f <= limit
}

func coordinateRule(limit float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return inRange(fl.Field().String(), limit)
	}
}

// measureRule accepts plain decimal strings; positive additionally rejects 0
func measureRule(positive bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if !measureRe.MatchString(s) {
			return false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		if positive {
			return d.IsPositive()
		}
		return !d.IsNegative()
	}
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(strings.TrimSpace(fl.Field().String()))
	}
}

func yearRule(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if !yearRe.MatchString(s) {
		return false
	}
	y, _ := strconv.Atoi(s)
	return y >= MinYear && y <= time.Now().Year()
}

func phoneRule(fl validator.FieldLevel) bool {
	s := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
	return phoneRe.MatchString(s)
}

func categoryRule(fl validator.FieldLevel) bool {
	_, ok := enum.ParseCategory(fl.Field().String())
	return ok
}
