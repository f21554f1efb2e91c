// Package seed populates a running Formbricks instance from the generated
// datasets, using only its public APIs. Item failures are logged and
// skipped; a failed connection check aborts the run.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/louisbranch/brickyard/internal/demodata"
	"github.com/louisbranch/brickyard/internal/formbricks"
)

// defaultInterval paces API calls so a local instance is not hammered.
const defaultInterval = 500 * time.Millisecond

// tracerName identifies seeding spans.
const tracerName = "github.com/louisbranch/brickyard/internal/seed"

// ErrUnreachable reports that the instance did not answer the connection
// check, which aborts the run before anything is created.
var ErrUnreachable = errors.New("formbricks api is unreachable")

// Client is the slice of the Formbricks API the seeder needs.
type Client interface {
	VerifyConnection(ctx context.Context) bool
	CreateUser(ctx context.Context, user demodata.User) (*formbricks.User, error)
	CreateSurvey(ctx context.Context, survey demodata.Survey) (*formbricks.Survey, error)
	CreateResponse(ctx context.Context, surveyID string, response demodata.Response) (*formbricks.Response, error)
}

// Config configures a Runner.
type Config struct {
	// Client talks to the target instance.
	Client Client
	// Interval between API calls, defaults to 500ms.
	Interval time.Duration
	// Out receives per-item progress lines.
	Out io.Writer
}

// Report counts what a run created.
type Report struct {
	Users     int
	Surveys   int
	Responses int
}

// Runner seeds one instance. Phases run in a fixed order so surveys exist
// before the responses that target them, and every API call goes through a
// single pacing limiter.
type Runner struct {
	client  Client
	limiter *rate.Limiter
	out     io.Writer
	tracer  trace.Tracer
}

// New builds a runner from cfg.
func New(cfg Config) *Runner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		client:  cfg.Client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		out:     out,
		tracer:  otel.Tracer(tracerName),
	}
}

// Run verifies connectivity and then seeds users, surveys, and responses in
// that order. It returns ErrUnreachable when the connection check fails and
// a context error when the run is interrupted; per-item API failures only
// reduce the report's counts.
func (r *Runner) Run(ctx context.Context, ds demodata.Datasets) (Report, error) {
	fmt.Fprintln(r.out, "Verifying API connection...")
	if !r.client.VerifyConnection(ctx) {
		return Report{}, ErrUnreachable
	}
	fmt.Fprintln(r.out, "Connection verified successfully")
	fmt.Fprintln(r.out)

	var report Report

	fmt.Fprintln(r.out, "Creating users...")
	users, err := r.phase(ctx, "seed.users", func(ctx context.Context) (int, error) {
		return r.seedUsers(ctx, ds.Users)
	})
	report.Users = users
	if err != nil {
		return report, err
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Creating surveys...")
	var surveys []*formbricks.Survey
	created, err := r.phase(ctx, "seed.surveys", func(ctx context.Context) (int, error) {
		var phaseErr error
		surveys, phaseErr = r.seedSurveys(ctx, ds.Surveys)
		return len(surveys), phaseErr
	})
	report.Surveys = created
	if err != nil {
		return report, err
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Creating survey responses...")
	responses, err := r.phase(ctx, "seed.responses", func(ctx context.Context) (int, error) {
		return r.seedResponses(ctx, ds.Responses, surveys)
	})
	report.Responses = responses
	if err != nil {
		return report, err
	}

	return report, nil
}

// phase wraps one seeding phase in a span carrying its created count.
func (r *Runner) phase(ctx context.Context, name string, fn func(context.Context) (int, error)) (int, error) {
	ctx, span := r.tracer.Start(ctx, name)
	defer span.End()

	count, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Int("created", count))
	return count, err
}

func (r *Runner) seedUsers(ctx context.Context, users []demodata.User) (int, error) {
	created := 0
	for i, user := range users {
		fmt.Fprintf(r.out, "  [%d/%d] Creating user: %s\n", i+1, len(users), user.Name)

		if err := r.limiter.Wait(ctx); err != nil {
			return created, err
		}
		if _, err := r.client.CreateUser(ctx, user); err != nil {
			fmt.Fprintf(r.out, "      Failed: %v\n", err)
			continue
		}
		created++
		fmt.Fprintf(r.out, "      Success - Role: %s\n", user.Role)
	}
	return created, nil
}

// seedSurveys returns only the surveys the server accepted. Their positions
// therefore shift left past any failure, and responses are matched against
// these shifted positions.
func (r *Runner) seedSurveys(ctx context.Context, surveys []demodata.Survey) ([]*formbricks.Survey, error) {
	created := make([]*formbricks.Survey, 0, len(surveys))
	for i, survey := range surveys {
		fmt.Fprintf(r.out, "  [%d/%d] Creating survey: %s\n", i+1, len(surveys), survey.Name)

		if err := r.limiter.Wait(ctx); err != nil {
			return created, err
		}
		result, err := r.client.CreateSurvey(ctx, survey)
		if err != nil {
			fmt.Fprintf(r.out, "      Failed: %v\n", err)
			continue
		}
		created = append(created, result)
		fmt.Fprintf(r.out, "      Success - Questions: %d\n", len(survey.Questions))
	}
	return created, nil
}

func (r *Runner) seedResponses(ctx context.Context, responses []demodata.Response, surveys []*formbricks.Survey) (int, error) {
	created := 0
	for i, response := range responses {
		index := response.SurveyIndex
		if index < 0 || index >= len(surveys) {
			fmt.Fprintf(r.out, "  [%d] Skipped - Invalid survey index\n", i+1)
			continue
		}

		fmt.Fprintf(r.out, "  [%d/%d] Creating response for survey %d\n", i+1, len(responses), index+1)

		if err := r.limiter.Wait(ctx); err != nil {
			return created, err
		}
		if _, err := r.client.CreateResponse(ctx, surveys[index].ID, response); err != nil {
			fmt.Fprintf(r.out, "      Failed: %v\n", err)
			continue
		}
		created++
		fmt.Fprintln(r.out, "      Success")
	}
	return created, nil
}
