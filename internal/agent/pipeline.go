package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

// Canned answers for the two non-fault outcomes. Refusals and missing
// data are product behaviour, not errors, so they return with HTTP 200.
const (
	RefusalAnswer = "I can't share that information. Access to the data needed for this question " +
		"has been turned off in your privacy settings."
	NoDataAnswer = "I couldn't find any records matching your question, so there's nothing to report yet."
)

type stage string

const (
	stageReformulating stage = "reformulating"
	stageExecuting     stage = "executing"
	stageSynthesizing  stage = "synthesizing"
	stageDone          stage = "done"
	stageFailed        stage = "failed"
)

// PermissionSource yields the current permission set for a user.
// Implementations must not cache: revocation has to take effect on the
// very next query.
type PermissionSource interface {
	GetPermissions(ctx context.Context, userID string) (models.PermissionSet, error)
}

// Options tune the pipeline's upstream calls.
type Options struct {
	// ModelTimeout bounds each hosted-model call.
	ModelTimeout time.Duration
	// QueryTimeout bounds the read-only SQL execution.
	QueryTimeout time.Duration
	// ModelRetries is the number of extra attempts for a failed model call.
	ModelRetries int
}

func (o Options) withDefaults() Options {
	if o.ModelTimeout <= 0 {
		o.ModelTimeout = 30 * time.Second
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = 10 * time.Second
	}
	if o.ModelRetries < 0 {
		o.ModelRetries = 0
	}
	return o
}

// Pipeline runs the reformulate → execute → synthesize sequence for one
// question. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	model  ChatModel
	perms  PermissionSource
	db     storage.ReadOnlyQuerier
	logger *slog.Logger
	opts   Options
}

// New assembles a pipeline. The permission source is consulted fresh on
// every Answer call.
func New(model ChatModel, perms PermissionSource, db storage.ReadOnlyQuerier, logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		model:  model,
		perms:  perms,
		db:     db,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// Answer runs the full pipeline for one question. storage.ErrNotFound is
// returned when the user does not exist; ErrUpstreamModel and
// ErrUpstreamExecution mark upstream faults. Refusals and empty results
// are successful answers.
func (p *Pipeline) Answer(ctx context.Context, userID, question string) (string, error) {
	log := p.logger.With("user_id", userID)

	perms, err := p.perms.GetPermissions(ctx, userID)
	if err != nil {
		return "", err
	}
	if perms.Empty() {
		log.Info("chat refused", "reason", "all categories denied")
		return RefusalAnswer, nil
	}

	log.Info("pipeline stage", "stage", stageReformulating)
	reformulated, err := p.complete(ctx, reformulatePrompt(question, userID))
	if err != nil {
		log.Error("pipeline stage", "stage", stageFailed, "during", stageReformulating, "err", err)
		return "", err
	}

	log.Info("pipeline stage", "stage", stageExecuting)
	resultText, refused, err := p.execute(ctx, reformulated, userID, perms)
	if err != nil {
		log.Error("pipeline stage", "stage", stageFailed, "during", stageExecuting, "err", err)
		return "", err
	}
	if refused {
		log.Info("chat refused", "reason", "generated query touched a denied category")
		return RefusalAnswer, nil
	}
	if resultText == "" {
		// Skip the synthesis call entirely: cheaper, and it cannot
		// fabricate figures for data that is not there.
		log.Info("pipeline stage", "stage", stageDone, "outcome", "no data")
		return NoDataAnswer, nil
	}

	log.Info("pipeline stage", "stage", stageSynthesizing)
	answer, err := p.complete(ctx, synthesizePrompt(question, resultText))
	if err != nil {
		log.Error("pipeline stage", "stage", stageFailed, "during", stageSynthesizing, "err", err)
		return "", err
	}

	log.Info("pipeline stage", "stage", stageDone)
	return answer, nil
}

// execute generates SQL against the permitted schema view, validates it,
// and runs it read-only. One regeneration attempt is allowed when the
// first statement fails validation or execution; execution is read-only
// by construction, so the retry cannot repeat a side effect. Returns the
// rendered table ("" when no rows matched) or refused=true when the
// question requires a denied category.
func (p *Pipeline) execute(ctx context.Context, question, userID string, perms models.PermissionSet) (text string, refused bool, err error) {
	schema := schemaView(perms)
	prompt := generatePrompt(question, userID, schema)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		reply, err := p.complete(ctx, prompt)
		if err != nil {
			return "", false, err
		}
		stmt := extractSQL(reply)

		if err := validateStatement(stmt, perms); err != nil {
			if errors.Is(err, errDeniedCategory) {
				return "", true, nil
			}
			lastErr = err
			prompt = generatePrompt(
				fmt.Sprintf("%s\n\nThe previous attempt was rejected (%v). Produce a corrected statement.", question, err),
				userID, schema,
			)
			continue
		}

		queryCtx, cancel := context.WithTimeout(ctx, p.opts.QueryTimeout)
		result, err := p.db.RunReadOnly(queryCtx, stmt)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return "", false, fmt.Errorf("%w: %v", ErrUpstreamExecution, ctx.Err())
			}
			lastErr = err
			p.logger.Warn("generated query failed", "err", err)
			prompt = generatePrompt(
				fmt.Sprintf("%s\n\nThe previous statement failed to execute. Produce a corrected statement.", question),
				userID, schema,
			)
			continue
		}
		// Statement validation cannot see through a star projection, so
		// the resolved column list is checked again before anything is
		// rendered into a prompt.
		if cols := deniedColumns(result.Columns, perms); len(cols) > 0 {
			p.logger.Info("result withheld", "denied_columns", cols)
			return "", true, nil
		}
		if result.Empty() {
			return "", false, nil
		}
		return renderTable(result), false, nil
	}

	return "", false, fmt.Errorf("%w: %v", ErrUpstreamExecution, lastErr)
}

// complete calls the hosted model with a per-attempt timeout and bounded
// retries on transient failure. Caller cancellation is never retried.
func (p *Pipeline) complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= p.opts.ModelRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrUpstreamModel, ctx.Err())
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, p.opts.ModelTimeout)
		reply, err := p.model.Complete(callCtx, prompt)
		cancel()
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ErrUpstreamModel, lastErr)
}
