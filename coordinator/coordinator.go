// Package coordinator deletes student records one at a time or in batches
// and reports every outcome through a notification sink.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studentadmin/notify"
	"studentadmin/remote"
	"studentadmin/types"
)

// Deleter removes a single student on the backend.
type Deleter interface {
	DeleteStudent(ctx context.Context, id string) (*remote.OperationResponse, error)
}

type Coordinator struct {
	deleter Deleter
	sink    notify.Sink
	msgs    Messages
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Coordinator)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMessages(m Messages) Option {
	return func(c *Coordinator) { c.msgs = m }
}

func New(deleter Deleter, sink notify.Sink, opts ...Option) *Coordinator {
	c := &Coordinator{
		deleter: deleter,
		sink:    sink,
		msgs:    DefaultMessages(),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeleteOne deletes one student and shows exactly one success or error
// notification. Failures of any kind resolve to false.
func (c *Coordinator) DeleteOne(ctx context.Context, id string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("delete aborted", zap.String("student_id", id), zap.Any("panic", r))
			ok = false
		}
	}()
	return c.deleteOne(ctx, id).OK
}

// DeleteMany deletes every id concurrently, waits for all of them and shows
// one summary notification. It reports whether every delete succeeded;
// an empty list counts as success.
func (c *Coordinator) DeleteMany(ctx context.Context, ids []string) bool {
	return c.DeleteManyReport(ctx, ids).OK
}

// DeleteManyReport behaves like DeleteMany and returns the per-student results
// in input order.
func (c *Coordinator) DeleteManyReport(ctx context.Context, ids []string) (report types.BatchReport) {
	report = types.BatchReport{
		BatchID:   uuid.New().String(),
		StartedAt: c.now().UTC(),
		Count:     len(ids),
		Results:   make([]types.ItemResult, len(ids)),
	}
	logger := c.logger.With(zap.String("batch_id", report.BatchID), zap.Int("count", len(ids)))
	logger.Debug("batch delete started")

	// The summary runs outside the fan-out; a panicking sink there still
	// resolves the batch to false.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("batch summary aborted", zap.Any("panic", r))
			report.OK = false
			if report.FinishedAt.IsZero() {
				report.FinishedAt = c.now().UTC()
			}
		}
	}()

	var g errgroup.Group
	for i, id := range ids {
		report.Results[i] = types.ItemResult{StudentID: id}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("delete %q: panic: %v", id, r)
				}
			}()
			report.Results[i] = c.deleteOne(ctx, id)
			return nil
		})
	}
	err := g.Wait()
	report.FinishedAt = c.now().UTC()

	if err != nil {
		logger.Error("batch delete failed", zap.Error(err))
		for i := range report.Results {
			if !report.Results[i].OK && report.Results[i].Message == "" {
				report.Results[i].Message = c.msgs.BatchFailed
			}
		}
		c.sink.Error(c.msgs.BatchFailed)
		return report
	}

	report.OK = true
	for _, res := range report.Results {
		if !res.OK {
			report.OK = false
			break
		}
	}

	if report.OK {
		c.sink.Success(fmt.Sprintf(c.msgs.BatchSucceeded, len(ids)))
	} else {
		c.sink.Warning(c.msgs.BatchPartial)
	}
	logger.Info("batch delete finished",
		zap.Bool("ok", report.OK),
		zap.Int("failed", len(report.Failed())),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (c *Coordinator) deleteOne(ctx context.Context, id string) types.ItemResult {
	resp, err := c.callDeleter(ctx, id)
	if err != nil {
		text := c.errorText(err)
		c.logger.Warn("delete student failed", zap.String("student_id", id), zap.Error(err))
		c.sink.Error(text)
		return types.ItemResult{StudentID: id, Message: text}
	}

	if resp != nil && resp.Success {
		text := firstNonEmpty(resp.Message, resp.Msg, c.msgs.DeleteSucceeded)
		c.logger.Debug("student deleted", zap.String("student_id", id))
		c.sink.Success(text)
		return types.ItemResult{StudentID: id, OK: true, Message: text}
	}

	text := firstNonEmpty(resp.Text(), c.msgs.DeleteFailed)
	c.logger.Warn("delete student rejected", zap.String("student_id", id), zap.String("message", text))
	c.sink.Error(text)
	return types.ItemResult{StudentID: id, Message: text}
}

// callDeleter turns a panicking deleter into an error.
func (c *Coordinator) callDeleter(ctx context.Context, id string) (resp *remote.OperationResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deleter panic: %v", r)
		}
	}()
	return c.deleter.DeleteStudent(ctx, id)
}

func (c *Coordinator) errorText(err error) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return firstNonEmpty(apiErr.Response.Text(), c.msgs.DeleteFailed)
	}
	if errors.Is(err, remote.ErrEmptyID) {
		return c.msgs.DeleteFailed
	}
	return c.msgs.DeleteUnavailable
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
