package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog("en", []string{"en", "ru"})
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := NewCatalog("en", nil)
	assert.Error(t, err)

	_, err = NewCatalog("en", []string{"en", "de"})
	assert.Error(t, err)

	_, err = NewCatalog("ru", []string{"en"})
	assert.Error(t, err)
}

func TestNegotiate(t *testing.T) {
	catalog := newTestCatalog(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,ru;q=0.5", "ru"},
		{"ja", "en"},
		{";;;garbage", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Negotiate(tt.header))
		})
	}
}

func TestT(t *testing.T) {
	catalog := newTestCatalog(t)

	assert.Equal(t, "Page 2 of 5", catalog.T("en", "page.of", "2", "5"))
	assert.Equal(t, "Страница 2 из 5", catalog.T("ru", "page.of", "2", "5"))
	// unsupported languages use the default
	assert.Equal(t, "Page 1 of 1", catalog.T("xx", "page.of", "1", "1"))
	assert.Equal(t, "no.such.key", catalog.T("en", "no.such.key"))
}

func TestMessagesCoverEveryLanguage(t *testing.T) {
	for key := range messages["en"] {
		_, ok := messages["ru"][key]
		assert.True(t, ok, "missing ru translation for %q", key)
	}
	for key := range messages["ru"] {
		_, ok := messages["en"][key]
		assert.True(t, ok, "missing en translation for %q", key)
	}
}

func TestSupported_ReturnsCopy(t *testing.T) {
	catalog := newTestCatalog(t)

	langs := catalog.Supported()
	langs[0] = "xx"

	assert.Equal(t, []string{"en", "ru"}, catalog.Supported())
	assert.True(t, catalog.IsSupported("ru"))
	assert.False(t, catalog.IsSupported("de"))
}
