package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"evently-client/internal/analytics"
	"evently-client/internal/auth"
	"evently-client/internal/bookings"
	"evently-client/internal/events"
	"evently-client/internal/graphql"
	"evently-client/internal/session"
	"evently-client/internal/workflow"
	"evently-client/pkg/logger"
)

type options struct {
	URL      string
	Email    string
	Password string
	Timeout  time.Duration
}

// app wires one process-lifetime session over the core services
type app struct {
	opts options
	out  io.Writer

	sessions *session.Store
	auth     auth.Service
	events   events.Service
	bookings bookings.Service
	workflow *workflow.Workflow
}

func newApp(opts options, out io.Writer, log *logger.Logger) *app {
	client := graphql.NewClient(opts.URL, graphql.WithLogger(log))
	sessions := session.NewStore()
	catalog := events.NewService(client, log)
	ledger := bookings.NewService(client, log)

	return &app{
		opts:     opts,
		out:      out,
		sessions: sessions,
		auth:     auth.NewService(client, sessions, log),
		events:   catalog,
		bookings: ledger,
		workflow: workflow.New(catalog, ledger, sessions, log),
	}
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.signup(ctx)
	case "events":
		return a.listEvents(ctx)
	case "create":
		return a.createEvent(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "bookings":
		return a.listBookings(ctx, args)
	case "cancel":
		return a.cancel(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// login signs in when credentials were supplied. Commands that need a
// session fail later with session.ErrNotAuthenticated otherwise.
func (a *app) login(ctx context.Context) error {
	if a.opts.Email == "" && a.opts.Password == "" {
		return nil
	}
	if _, err := a.auth.Login(ctx, a.opts.Email, a.opts.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fmt.Errorf("%s: %w", auth.InvalidCredentialsMessage, err)
		}
		return err
	}
	return nil
}

func (a *app) signup(ctx context.Context) error {
	if _, err := a.auth.Signup(ctx, a.opts.Email, a.opts.Password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, auth.SignupMessage)
	return nil
}

func (a *app) listEvents(ctx context.Context) error {
	if err := a.login(ctx); err != nil {
		return err
	}
	if err := a.events.EnsureLoaded(ctx); err != nil {
		return err
	}

	var userID string
	if cred, ok := a.sessions.Current(); ok {
		userID = cred.UserID
	}

	now := time.Now()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tDATE\tSTATUS\t")
	for _, ev := range a.events.Events() {
		note := string(ev.StatusAt(now))
		if ev.OwnedBy(userID) {
			note += ", yours"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t\n", ev.ID, ev.Title, ev.Price, ev.Date.Format("2006-01-02 15:04"), note)
	}
	return w.Flush()
}

func (a *app) createEvent(ctx context.Context, args []string) error {
	var draft events.Draft
	flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
	flagSet.StringVar(&draft.Title, "title", "", "event title")
	flagSet.StringVar(&draft.Description, "description", "", "event description")
	flagSet.Float64Var(&draft.Price, "price", 0, "ticket price")
	flagSet.StringVar(&draft.Date, "date", "", "event date, e.g. 2030-05-01T20:00")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if err := a.login(ctx); err != nil {
		return err
	}
	if err := a.workflow.StartCreate(); err != nil {
		return err
	}
	ev, err := a.workflow.ConfirmCreate(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created event %s (%s)\n", ev.ID, ev.Title)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: evently book <event-id>")
	}
	if err := a.login(ctx); err != nil {
		return err
	}
	if !a.sessions.Authenticated() {
		return session.ErrNotAuthenticated
	}
	if err := a.events.EnsureLoaded(ctx); err != nil {
		return err
	}
	if err := a.workflow.Select(args[0]); err != nil {
		return err
	}

	conf, err := a.workflow.ConfirmBooking(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booked %s, booking %s\n", args[0], conf.ID)
	return nil
}

func (a *app) listBookings(ctx context.Context, args []string) error {
	var chart bool
	flagSet := pflag.NewFlagSet("bookings", pflag.ContinueOnError)
	flagSet.BoolVar(&chart, "chart", false, "show the price histogram instead of the list")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if err := a.login(ctx); err != nil {
		return err
	}
	if err := a.bookings.EnsureLoaded(ctx, a.sessions.CredentialRef()); err != nil {
		return err
	}
	list := a.bookings.Bookings()

	if chart {
		return writeChart(a.out, analytics.PriceHistogram(list))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOOKING\tEVENT\tPRICE\tBOOKED AT\t")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t\n", b.ID, b.Event.Title, b.Event.Price, b.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *app) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: evently cancel <booking-id>")
	}
	if err := a.login(ctx); err != nil {
		return err
	}
	if err := a.bookings.Cancel(ctx, args[0], a.sessions.CredentialRef()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cancelled booking %s\n", args[0])
	return nil
}

func writeChart(out io.Writer, buckets []analytics.Bucket) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, b := range buckets {
		fmt.Fprintf(w, "%s\t%s\t%d\t\n", b.Label, strings.Repeat("#", b.Count), b.Count)
	}
	return w.Flush()
}
