package schema

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/laporinfra/laporinfra/pkg/i18n"
)

var validate = newValidator()

// FieldErrors maps a top-level JSON field name to a localized message
type FieldErrors map[string]string

// Error implements error; fields are listed in sorted order
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) merge(other FieldErrors) FieldErrors {
	if len(other) == 0 {
		return f
	}
	if f == nil {
		f = FieldErrors{}
	}
	for k, v := range other {
		f[k] = v
	}
	return f
}

func (f FieldErrors) orNil() FieldErrors {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Validate checks v against its struct tags and returns nil when it is valid.
// Messages are in the default locale.
func Validate(v any) FieldErrors {
	return ValidateWith(i18n.NewLocalizer(i18n.DefaultLocale), v)
}

// ValidateContext localizes messages with the locale carried by ctx
func ValidateContext(ctx context.Context, v any) FieldErrors {
	return ValidateWith(i18n.LocalizerFromContext(ctx), v)
}

// ValidateWith validates v and localizes messages with l
func ValidateWith(l *i18n.Localizer, v any) FieldErrors {
	switch b := v.(type) {
	case Building:
		return validateBuilding(l, &b)
	case *Building:
		return validateBuilding(l, b)
	}
	return collect(l, validate.Struct(v)).orNil()
}

// collect keys each failure by the first segment of its JSON path. When a
// field fails more than once the last failure wins.
func collect(l *i18n.Localizer, err error) FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		out[key] = format(l, key, fe)
	}
	return out
}

func fieldKey(namespace string) string {
	// drop the struct name
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexAny(namespace, ".["); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}

func format(l *i18n.Localizer, key string, fe validator.FieldError) string {
	if key == "photos" {
		switch fe.Field() {
		case "size":
			return l.T("validation.photo_size", map[string]string{"max": humanize.IBytes(MaxPhotoSize)})
		case "mime":
			return l.T("validation.photo_type")
		}
		if fe.Tag() == "min" {
			return l.T("validation.photos_min", map[string]string{"min": fe.Param()})
		}
	}

	switch fe.Tag() {
	case "required":
		return message(l, "validation.required", key, nil)
	case "lat":
		return message(l, "validation.latitude", key, nil)
	case "lon":
		return message(l, "validation.longitude", key, nil)
	case "measure_pos", "measure_nonneg", "count", "year":
		return message(l, "validation."+fe.Tag(), key, nil)
	case "phone_id":
		return message(l, "validation.phone", key, nil)
	case "max":
		return message(l, "validation.max", key, map[string]string{"max": fe.Param()})
	case "oneof":
		return message(l, "validation.oneof", key, map[string]string{"options": fe.Param()})
	default:
		return message(l, "validation.invalid", key, nil)
	}
}

// FieldLabel returns the localized label of a JSON field name
func FieldLabel(l *i18n.Localizer, field string) string {
	if l.Has("fields." + field) {
		return l.T("fields." + field)
	}
	return field
}

func message(l *i18n.Localizer, msgKey, field string, params map[string]string) string {
	p := map[string]string{"field": FieldLabel(l, field)}
	for k, v := range params {
		p[k] = v
	}
	return l.T(msgKey, p)
}

// Unmapped formats the message for a select value that has no API token
func Unmapped(l *i18n.Localizer, field string) string {
	return message(l, "validation.unmapped", field, nil)
}
