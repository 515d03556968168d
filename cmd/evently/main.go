// evently is a terminal client for the events marketplace. Credentials
// given with --email/--password are used for the lifetime of the process
// only.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"evently-client/internal/shared/config"
	"evently-client/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()
	cfg := config.Load()

	var opts options
	flagSet := pflag.NewFlagSet("evently", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&opts.URL, "url", cfg.GraphQLURL, "GraphQL endpoint")
	flagSet.StringVar(&opts.Email, "email", "", "account email")
	flagSet.StringVar(&opts.Password, "password", "", "account password")
	flagSet.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "overall deadline for the command")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		printUsage(flagSet)
		return errors.New("missing command")
	}

	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	a := newApp(opts, os.Stdout, log)
	return a.dispatch(ctx, flagSet.Arg(0), flagSet.Args()[1:])
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: evently [flags] <command> [args]

Commands:
  signup                       create an account from --email/--password
  events                       list all events
  create --title --description --price --date
                               publish an event (requires login)
  book <event-id>              book an event (requires login)
  bookings [--chart]           list your bookings, optionally as a price chart
  cancel <booking-id>          cancel one of your bookings

Flags:
%s`, flagSet.FlagUsages())
}
