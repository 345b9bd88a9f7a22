package inquiry

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Kind distinguishes the forms that produce submissions.
type Kind string

const (
	KindContact   Kind = "contact"
	KindSubscribe Kind = "subscribe"
	KindProposal  Kind = "proposal"
)

// Submission is an acknowledged form post. Nothing is validated.
type Submission struct {
	Kind       Kind
	Name       string
	Company    string
	Email      string
	Message    string
	Source     string
	Reference  string
	ReceivedAt time.Time
}

// FromForm copies the known fields of a posted form.
func FromForm(kind Kind, form url.Values) Submission {
	return Submission{
		Kind:    kind,
		Name:    strings.TrimSpace(form.Get("name")),
		Company: strings.TrimSpace(form.Get("company")),
		Email:   strings.TrimSpace(form.Get("email")),
		Message: strings.TrimSpace(form.Get("message")),
		Source:  strings.TrimSpace(form.Get("source")),
	}
}

// Sink records submissions.
type Sink interface {
	Record(ctx context.Context, s Submission) (Submission, error)
}

// LogSink writes submissions to a zap logger and delivers them nowhere else.
type LogSink struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewLogSink returns a sink logging through logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{
		logger: logger.Named("inquiry"),
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
}

// Record stamps the submission with a reference and receipt time, then logs it.
// The message body and email are not logged.
func (s *LogSink) Record(_ context.Context, sub Submission) (Submission, error) {
	sub.ReceivedAt = s.now().UTC()
	if sub.Reference == "" {
		sub.Reference = s.newID()
	}
	s.logger.Info("submission received",
		zap.String("kind", string(sub.Kind)),
		zap.String("reference", sub.Reference),
		zap.String("company", sub.Company),
		zap.Bool("has_email", sub.Email != ""),
		zap.Int("message_length", len(sub.Message)),
		zap.String("source", sub.Source),
		zap.Time("received_at", sub.ReceivedAt),
	)
	return sub, nil
}
