package task

import (
	"context"
	"fmt"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"
	taskerrors "github.com/fenixfl1/CompuPay/internal/task/errors"
)

func (s *service) AddTags(ctx context.Context, id int, tagIDs []int, actor string) error {
	if err := s.attachTags(ctx, id, tagIDs, actor); err != nil {
		return err
	}
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s tagged task #%d", actor, id))
	return nil
}

// attachTags links tagIDs to the task, reactivating links removed earlier.
func (s *service) attachTags(ctx context.Context, id int, tagIDs []int, actor string) error {
	ids := uniqueInts(tagIDs)
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}

	tags, err := qtx.FindTags(ctx, ids)
	if err != nil {
		return err
	}
	if len(tags) != len(ids) {
		return taskerrors.ErrTagNotFound
	}

	links, err := qtx.FindTagLinks(ctx, id, ids)
	if err != nil {
		return err
	}
	linked := make(map[int]bool, len(links))
	var reactivate []int
	for _, l := range links {
		linked[l.TagID] = true
		if !l.IsActive() {
			reactivate = append(reactivate, l.TagID)
		}
	}

	var insert []TaskTag
	for _, tagID := range ids {
		if linked[tagID] {
			continue
		}
		row := TaskTag{TaskID: id, TagID: tagID}
		if err := entity.PrepareCreate(&row.Base, actor); err != nil {
			return err
		}
		insert = append(insert, row)
	}

	if err := qtx.SetTagLinksState(ctx, id, reactivate, entity.StateActive, actor); err != nil {
		return err
	}
	if err := qtx.CreateTagLinks(ctx, insert); err != nil {
		return mapRepositoryError(err, taskerrors.ErrTagNotFound)
	}

	return tx.Commit()
}

func (s *service) RemoveTags(ctx context.Context, id int, tagIDs []int, actor string) error {
	ids := uniqueInts(tagIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	if err := qtx.SetTagLinksState(ctx, id, ids, entity.StateInactive, actor); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s removed tags from task #%d", actor, id))
	return nil
}

func (s *service) CreateTag(ctx context.Context, req CreateTagRequest, actor string) (TagResponse, error) {
	tag := &Tag{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := entity.PrepareCreate(&tag.Base, actor); err != nil {
		return TagResponse{}, err
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return TagResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(tagKind, tag.TagID), actor, activitylog.ActionCreate,
		fmt.Sprintf("tag %s created", tag.Name))

	return mapTag(*tag), nil
}

func (s *service) UpdateTag(ctx context.Context, id int, req UpdateTagRequest, actor string) (TagResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return TagResponse{}, taskerrors.ErrEmptyUpdate
	}
	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return TagResponse{}, err
	}

	if err := s.repo.UpdateTag(ctx, id, fields); err != nil {
		return TagResponse{}, mapRepositoryError(err, taskerrors.ErrTagNotFound)
	}
	tag, err := s.repo.FindTagByID(ctx, id)
	if err != nil {
		return TagResponse{}, mapRepositoryError(err, taskerrors.ErrTagNotFound)
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(tagKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("tag %s updated", tag.Name))

	return mapTag(*tag), nil
}

func (s *service) ListTags(ctx context.Context, res filter.Result, page response.Page) ([]TagResponse, int64, error) {
	tags, total, err := s.repo.FindTagPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = mapTag(t)
	}
	return out, total, nil
}
