package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"sepacbi/internal/account"
	"sepacbi/internal/account/metrics"
	"sepacbi/internal/account/service"
	"sepacbi/internal/platform/config"
	"sepacbi/internal/platform/logger"
	"sepacbi/internal/xmltree"
	dErrors "sepacbi/pkg/domain-errors"
)

type options struct {
	iban  string
	tag   string
	euro  bool
	check bool
}

func newRootCommand(stdout, stderr io.Writer, loadConfig func() (*config.Config, error)) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "accountxml",
		Short: "Print the XML fragment describing a bank account",
		Long: `accountxml canonicalizes an IBAN, optionally validates it, and prints the
account fragment (<Tag><Id><IBAN/></Id>[<Ccy>EUR</Ccy>]</Tag>) to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd, stdout, stderr, loadConfig, opts)
			if err != nil {
				fmt.Fprintf(stderr, "accountxml: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.iban, "iban", "", "account IBAN, spaces and case are normalized")
	flags.StringVar(&opts.tag, "tag", "", "root element name (default from SEPACBI_DEFAULT_TAG)")
	flags.BoolVar(&opts.euro, "euro", false, "add a Ccy element with EUR")
	flags.BoolVar(&opts.check, "check", false, "validate the IBAN before printing")

	return cmd
}

func run(cmd *cobra.Command, stdout, stderr io.Writer, loadConfig func() (*config.Config, error), opts options) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(stderr, cfg)
	if err != nil {
		return err
	}

	tag := opts.tag
	if tag == "" {
		tag = cfg.DefaultTag
	}

	reg := prometheus.NewRegistry()
	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(metrics.New(reg)),
	)

	attributes := map[string]any{account.AttrIBAN: opts.iban}
	if opts.euro {
		attributes[account.AttrHasEuroAttr] = true
	}

	res, err := svc.Prepare(cmd.Context(), service.Request{
		Attributes: attributes,
		Tag:        tag,
		Check:      opts.check,
	})
	if cfg.Metrics {
		defer dumpMetrics(stderr, reg)
	}
	if err != nil {
		return err
	}

	if err := xmltree.Encode(stdout, res.Fragment, cfg.Indent); err != nil {
		if errors.Is(err, xmltree.ErrInvalidName) {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid root tag")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "writing fragment")
	}
	return nil
}

// exitCode maps a command error to the process status: 2 for input and
// configuration errors, 1 for everything else (IBAN validation included).
func exitCode(err error) int {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInvalidInput, dErrors.CodeValidation:
		return 2
	default:
		return 1
	}
}

func dumpMetrics(w io.Writer, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		fmt.Fprintf(w, "gathering metrics: %v\n", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return
		}
	}
}
