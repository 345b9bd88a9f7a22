package inquiry

import (
	"context"
	"net/url"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFormTrims(t *testing.T) {
	form := url.Values{
		"name":    {"  Asha "},
		"company": {"Acme"},
		"email":   {"asha@acme.test"},
		"message": {"\nHello\n"},
		"ignored": {"x"},
	}
	sub := FromForm(KindContact, form)
	require.Equal(t, Submission{Kind: KindContact, Name: "Asha", Company: "Acme", Email: "asha@acme.test", Message: "Hello"}, sub)
}

func TestLogSinkRecords(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))

	got, err := sink.Record(context.Background(), Submission{Kind: KindSubscribe, Email: "a@b.test", Message: "secret"})
	require.NoError(t, err)
	_, err = ulid.ParseStrict(got.Reference)
	require.NoError(t, err)
	require.False(t, got.ReceivedAt.IsZero())

	entries := logs.FilterMessage("submission received").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "subscribe", fields["kind"])
	require.Equal(t, got.Reference, fields["reference"])
	require.Equal(t, true, fields["has_email"])
	require.NotContains(t, fields, "email")
	require.NotContains(t, fields, "message")
	require.Equal(t, "inquiry", entries[0].LoggerName)
}

func TestLogSinkKeepsReference(t *testing.T) {
	sink := NewLogSink(nil)
	got, err := sink.Record(context.Background(), Submission{Kind: KindContact, Reference: "fixed"})
	require.NoError(t, err)
	require.Equal(t, "fixed", got.Reference)
}

func TestReferencesAreUnique(t *testing.T) {
	sink := NewLogSink(zap.NewNop())
	seen := map[string]struct{}{}
	for range 100 {
		got, err := sink.Record(context.Background(), Submission{Kind: KindContact})
		require.NoError(t, err)
		_, dup := seen[got.Reference]
		require.False(t, dup)
		seen[got.Reference] = struct{}{}
	}
}
