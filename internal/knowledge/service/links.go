package service

import (
	"context"
	"errors"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/platform/sentinel"
)

// RecordLink validates a link against the person and item in the current
// snapshot and persists it through the Writer.
func (e *Engine) RecordLink(ctx context.Context, spec models.Link) (link *models.Link, err error) {
	ctx, _, finish := e.begin(ctx, "record_link")
	defer func() { finish(err) }()

	if e.writer == nil {
		return nil, dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeInternal, "engine has no link writer")
	}
	v, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := v.index.Person(spec.PersonID); !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	item, ok := v.index.Item(spec.ItemID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "item not found")
	}

	// Use constructor which validates invariants
	l, err := models.NewLink(spec, item)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := e.writer.SaveLink(ctx, *l); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "link id belongs to another person or item")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save link")
	}
	e.logger.InfoContext(ctx, "link recorded",
		"link_id", l.ID.String(),
		"person_id", l.PersonID.String(),
		"item_id", l.ItemID.String(),
		"binding", l.Binding.String(),
	)
	return l, nil
}

// RemoveLink deletes a link through the Writer.
func (e *Engine) RemoveLink(ctx context.Context, linkID id.LinkID) (err error) {
	ctx, _, finish := e.begin(ctx, "remove_link")
	defer func() { finish(err) }()

	if e.writer == nil {
		return dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeInternal, "engine has no link writer")
	}
	if err := e.writer.DeleteLink(ctx, linkID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "link not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete link")
	}
	e.logger.InfoContext(ctx, "link removed", "link_id", linkID.String())
	return nil
}
