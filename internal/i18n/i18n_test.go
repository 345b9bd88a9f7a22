package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Default("en")
	require.NoError(t, err)

	require.Equal(t, "hi", b.Resolve("en;q=0.8, hi;q=0.9"))
	require.Equal(t, "en", b.Resolve("en-GB,hi;q=0.5"))
	require.Equal(t, "hi", b.Resolve("hi-IN"))
}

func TestResolveFallsBack(t *testing.T) {
	b, err := Default("en")
	require.NoError(t, err)

	require.Equal(t, "en", b.Resolve(""))
	require.Equal(t, "en", b.Resolve("fr-FR"))
	require.Equal(t, "en", b.Resolve(";;garbage"))
}

func TestFallbackLocaleIsPreferredForUnmatched(t *testing.T) {
	b, err := Default("hi")
	require.NoError(t, err)
	require.Equal(t, "hi", b.Resolve("de"))
	require.Equal(t, "en", b.Resolve("en-US"))
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	b, err := Default("en")
	require.NoError(t, err)

	require.Equal(t, "सेवाएँ", b.T("hi", "nav.services"))
	require.Equal(t, "PREFICTION", b.T("hi", "site.name"), "missing hi keys use en")
	require.Equal(t, "no.such.key", b.T("hi", "no.such.key"))

	tr := b.For("fr")
	require.Equal(t, "en", tr.Lang())
	require.Equal(t, "Services", tr.T("nav.services"))
}

func TestSupported(t *testing.T) {
	b, err := Default("en")
	require.NoError(t, err)
	require.Equal(t, []string{"en", "hi"}, b.Supported())
	require.True(t, b.IsSupported("hi"))
	require.False(t, b.IsSupported("ja"))
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.json": {Data: []byte(`{"a":"A"}`)},
	}
	_, err := Load(fsys, "l", "ja", []string{"en", "ja"})
	require.Error(t, err)

	b, err := Load(fsys, "l", "en", []string{"en", "ja"})
	require.NoError(t, err)
	require.Equal(t, []string{"en"}, b.Supported())

	_, err = Load(fstest.MapFS{"l/en.json": {Data: []byte(`{`)}}, "l", "en", nil)
	require.Error(t, err)
}

func TestEnglishCoversEveryKey(t *testing.T) {
	b, err := Default("en")
	require.NoError(t, err)
	for key := range b.dict["hi"] {
		_, ok := b.dict["en"][key]
		require.True(t, ok, "hi key %q missing from en", key)
	}
}
