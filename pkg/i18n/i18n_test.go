package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizer_T(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		params map[string]string
		want   string
	}{
		{"indonesian", LocaleIndonesian, "errors.identity_required", nil, "Silakan lengkapi data pelapor terlebih dahulu"},
		{"english", LocaleEnglish, "errors.identity_required", nil, "Please complete the reporter details first"},
		{"params", LocaleEnglish, "errors.submission_failed", map[string]string{"message": "timeout"}, "Failed to submit the report: timeout"},
		{"unknown locale falls back", "fr", "errors.identity_required", nil, "Silakan lengkapi data pelapor terlebih dahulu"},
		{"unknown key", LocaleEnglish, "errors.nope", nil, "errors.nope"},
		{"section is not a message", LocaleEnglish, "errors", nil, "errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLocalizer(tt.locale).T(tt.key, tt.params))
		})
	}
}

func TestLocalizer_Has(t *testing.T) {
	l := NewLocalizer(LocaleEnglish)
	assert.True(t, l.Has("geo.timeout"))
	assert.False(t, l.Has("geo.nope"))
	assert.Equal(t, LocaleIndonesian, NewLocalizer("").GetLocale())
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := map[string]string{
		"":               LocaleIndonesian,
		"en-US,en;q=0.9": LocaleEnglish,
		"id-ID,en;q=0.8": LocaleIndonesian,
		" EN ":           LocaleEnglish,
		"jv,en;q=0.5":    LocaleIndonesian,
	}
	for header, want := range tests {
		assert.Equal(t, want, ParseAcceptLanguage(header), header)
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.Header.Set("Accept-Language", "id")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, LocaleEnglish, got)
	assert.Equal(t, LocaleEnglish, rr.Header().Get("Content-Language"))

	assert.Equal(t, DefaultLocale, GetLocaleFromContext(context.Background()))
}
