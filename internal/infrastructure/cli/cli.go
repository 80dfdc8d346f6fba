// Package cli internal/infrastructure/cli/cli.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// ErrUsage marks command-line errors that should print usage and exit with
// status 2 rather than being reported as failures.
var ErrUsage = errors.New("usage error")

// RateQuerier defines the service interface the CLI drives.
type RateQuerier interface {
	GetRates(ctx context.Context, query entity.Query) ([]entity.Observation, error)
}

// App is the command-line front end: it parses arguments into a query, runs
// it, and prints one line per selected observation.
type App struct {
	service RateQuerier
	logger  logrus.FieldLogger
	out     io.Writer
}

// NewApp creates a new CLI app writing results to out.
func NewApp(service RateQuerier, logger logrus.FieldLogger, out io.Writer) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if out == nil {
		out = os.Stdout
	}

	return &App{
		service: service,
		logger:  logger,
		out:     out,
	}
}

// ParseQuery parses command-line arguments (excluding the program name) into
// a rate query.
func ParseQuery(args []string) (entity.Query, error) {
	fs := pflag.NewFlagSet("boc-usd-cad", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	reverse := fs.BoolP("reverse", "r", false, "Provide the exchange rate from CAD to USD")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return entity.Query{}, fmt.Errorf("%w: help requested", ErrUsage)
		}
		return entity.Query{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	dates := fs.Args()
	if len(dates) < 1 || len(dates) > 2 {
		return entity.Query{}, fmt.Errorf("%w: expected DATE [DATE], got %d arguments", ErrUsage, len(dates))
	}

	query := entity.Query{Reverse: *reverse}

	startDate, err := entity.ParseDate(dates[0])
	if err != nil {
		return entity.Query{}, fmt.Errorf("%w: invalid start date %q (format: YYYY-MM-DD)", ErrUsage, dates[0])
	}
	query.StartDate = startDate

	if len(dates) == 2 {
		endDate, err := entity.ParseDate(dates[1])
		if err != nil {
			return entity.Query{}, fmt.Errorf("%w: invalid end date %q (format: YYYY-MM-DD)", ErrUsage, dates[1])
		}
		query.EndDate = &endDate
	}

	return query, nil
}

// Run executes one invocation: parse, query, print. There is no partial
// output; on any failure nothing is written to out.
func (a *App) Run(ctx context.Context, args []string) error {
	query, err := ParseQuery(args)
	if err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"start_date": entity.FormatDate(query.StartDate),
		"range":      query.IsRange(),
		"reverse":    query.Reverse,
	}).Debug("Parsed query")

	observations, err := a.service.GetRates(ctx, query)
	if err != nil {
		return err
	}

	for _, obs := range observations {
		fmt.Fprintf(a.out, "%s: %s\n", entity.FormatDate(obs.Date), obs.Rate)
	}

	return nil
}

const usage = `Usage: boc-usd-cad [flags] DATE [DATE]

Get the USD to CAD exchange rate from the Bank of Canada for a single date,
or a range. Returns the preceding business day if the selected date is not
available.

Arguments:
  DATE  A single date, or start date of the range (format: YYYY-MM-DD)
  DATE  End date of the range (format: YYYY-MM-DD)

Flags:
  -r, --reverse   Provide the exchange rate from CAD to USD
`
