package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification label values for FragmentsEmitted.
const (
	Domestic = "domestic"
	Foreign  = "foreign"
)

// Metrics provides observability for account preparation.
// Tracks records built, IBAN checks and their failures, and emitted fragments.
type Metrics struct {
	AccountsBuilt    prometheus.Counter
	IBANChecks       prometheus.Counter
	IBANFailures     *prometheus.CounterVec
	FragmentsEmitted *prometheus.CounterVec
}

// New creates the account metrics and registers them with reg. A nil reg
// leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsBuilt: f.NewCounter(prometheus.CounterOpts{
			Name: "sepacbi_accounts_built_total",
			Help: "Total number of account records constructed",
		}),
		IBANChecks: f.NewCounter(prometheus.CounterOpts{
			Name: "sepacbi_iban_checks_total",
			Help: "Total number of IBAN validations performed",
		}),
		IBANFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sepacbi_iban_check_failures_total",
			Help: "IBAN validations that failed, by failure kind",
		}, []string{"kind"}),
		FragmentsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sepacbi_fragments_emitted_total",
			Help: "Account fragments emitted, by domestic/foreign classification",
		}, []string{"classification"}),
	}
}

// IncrementAccountsBuilt records a successful construction.
func (m *Metrics) IncrementAccountsBuilt() {
	m.AccountsBuilt.Inc()
}

// IncrementIBANChecks records a validation attempt.
func (m *Metrics) IncrementIBANChecks() {
	m.IBANChecks.Inc()
}

// IncrementIBANFailure records a failed validation of the given kind.
func (m *Metrics) IncrementIBANFailure(kind string) {
	m.IBANFailures.WithLabelValues(kind).Inc()
}

// IncrementFragmentsEmitted records an emitted fragment.
func (m *Metrics) IncrementFragmentsEmitted(foreign bool) {
	label := Domestic
	if foreign {
		label = Foreign
	}
	m.FragmentsEmitted.WithLabelValues(label).Inc()
}
