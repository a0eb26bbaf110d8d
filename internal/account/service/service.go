package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sepacbi/internal/account"
	"sepacbi/internal/account/metrics"
	"sepacbi/internal/iban"
	"sepacbi/internal/xmltree"
	dErrors "sepacbi/pkg/domain-errors"
)

// IBANValidator checks a canonical IBAN.
type IBANValidator interface {
	Validate(canonical string) error
}

// Request describes one account to prepare for a payment document.
type Request struct {
	Attributes map[string]any
	Tag        string
	Check      bool
}

// Result is a prepared account and its fragment.
type Result struct {
	RunID    uuid.UUID
	Account  *account.Account
	Foreign  bool
	Fragment xmltree.Node
}

// Service prepares account fragments for the document assembly layer.
type Service struct {
	validator IBANValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithValidator(v IBANValidator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// New constructs a Service that validates with account.DefaultValidator
// unless WithValidator is given.
func New(opts ...Option) *Service {
	s := &Service{validator: account.DefaultValidator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare builds the account from req.Attributes, optionally validates its
// IBAN, and emits the fragment rooted at req.Tag.
//
// Errors:
//   - CodeInvalidInput when Tag is empty or the attributes are rejected; the
//     *attrs.UnrecognizedAttributeError stays reachable via errors.As
//   - the validator's error, unwrapped, when Check is set and the IBAN fails
func (s *Service) Prepare(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New()
	logger := s.logger
	if logger != nil {
		logger = logger.With("run_id", runID.String(), "tag", req.Tag)
	}

	if req.Tag == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "root tag is required")
	}

	acct, err := account.FromAttributes(req.Attributes, account.WithValidator(s.validator))
	if err != nil {
		logWarn(ctx, logger, "account attributes rejected", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid account attributes")
	}
	s.incrementAccountsBuilt()

	if req.Check {
		s.incrementIBANChecks()
		if err := acct.PerformChecks(); err != nil {
			kind := failureKind(err)
			s.incrementIBANFailure(kind)
			logWarn(ctx, logger, "iban validation failed", "iban", acct.IBAN(), "kind", kind, "error", err)
			return nil, err
		}
	}

	foreign := acct.IsForeign()
	fragment := acct.Emit(req.Tag)
	s.incrementFragmentsEmitted(foreign)

	if logger != nil {
		logger.InfoContext(ctx, "account fragment emitted",
			"iban", acct.IBAN(),
			"foreign", foreign,
			"currency_tag", acct.EmitsCurrencyTag(),
			"checked", req.Check)
	}

	return &Result{
		RunID:    runID,
		Account:  acct,
		Foreign:  foreign,
		Fragment: fragment,
	}, nil
}

func failureKind(err error) string {
	var verr *iban.ValidationError
	if errors.As(err, &verr) {
		return string(verr.Kind)
	}
	return "other"
}

func logWarn(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, msg, args...)
}

func (s *Service) incrementAccountsBuilt() {
	if s.metrics != nil {
		s.metrics.IncrementAccountsBuilt()
	}
}

func (s *Service) incrementIBANChecks() {
	if s.metrics != nil {
		s.metrics.IncrementIBANChecks()
	}
}

func (s *Service) incrementIBANFailure(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementIBANFailure(kind)
	}
}

func (s *Service) incrementFragmentsEmitted(foreign bool) {
	if s.metrics != nil {
		s.metrics.IncrementFragmentsEmitted(foreign)
	}
}
