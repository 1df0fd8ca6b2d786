package task

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/events"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	taskerrors "github.com/fenixfl1/CompuPay/internal/task/errors"

	"go.uber.org/zap"
)

// AddOrRemoveUsers makes the task's active assignees equal to usernames.
func (s *service) AddOrRemoveUsers(ctx context.Context, id int, usernames []string, actor string) (TaskResponse, error) {
	t, err := s.syncUsers(ctx, id, usernames, actor)
	if err != nil {
		return TaskResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s changed the assignees of task %s", actor, t.Name))

	return s.load(ctx, *t)
}

// syncUsers diffs the active assignees against the desired set inside one
// transaction. Dropped users are deactivated. Added users get their old row
// reactivated when one exists, otherwise a new row, and a task.assigned
// event is queued for each of them.
func (s *service) syncUsers(ctx context.Context, id int, usernames []string, actor string) (*Task, error) {
	desired := uniqueStrings(usernames)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	if !t.IsActive() {
		return nil, taskerrors.ErrTaskInactive
	}

	want := make(map[int]string, len(desired))
	var order []int
	if len(desired) > 0 {
		users, err := qtx.FindUsers(ctx, desired)
		if err != nil {
			return nil, err
		}
		if len(users) != len(desired) {
			return nil, taskerrors.ErrUserNotFound
		}
		for _, u := range users {
			want[u.UserID] = u.Username
			order = append(order, u.UserID)
		}
	}

	current, err := qtx.FindAssignments(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	have := make(map[int]TaskAssignment, len(current))
	var remove, reactivate []int
	for _, a := range current {
		have[a.UserID] = a
		_, wanted := want[a.UserID]
		switch {
		case a.IsActive() && !wanted:
			remove = append(remove, a.UserID)
		case !a.IsActive() && wanted:
			reactivate = append(reactivate, a.UserID)
		}
	}

	var insert []TaskAssignment
	for _, userID := range order {
		if _, ok := have[userID]; ok {
			continue
		}
		row := TaskAssignment{TaskID: id, UserID: userID}
		if err := entity.PrepareCreate(&row.Base, actor); err != nil {
			return nil, err
		}
		insert = append(insert, row)
	}

	if err := qtx.SetAssignmentsState(ctx, id, remove, entity.StateInactive, actor); err != nil {
		return nil, err
	}
	if err := qtx.SetAssignmentsState(ctx, id, reactivate, entity.StateActive, actor); err != nil {
		return nil, err
	}
	if err := qtx.CreateAssignments(ctx, insert); err != nil {
		return nil, mapRepositoryError(err, taskerrors.ErrUserNotFound)
	}

	added := make([]string, 0, len(reactivate)+len(insert))
	for _, userID := range reactivate {
		added = append(added, want[userID])
	}
	for _, row := range insert {
		added = append(added, want[row.UserID])
	}
	if err := s.queueAssigned(ctx, tx, t, added, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Debug("task assignees synced",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("task_id", id),
		zap.Int("added", len(added)),
		zap.Int("removed", len(remove)),
	)

	return t, nil
}

// queueAssigned writes one outbox row per added user in the same
// transaction as the assignment change.
func (s *service) queueAssigned(ctx context.Context, tx *sql.Tx, t *Task, usernames []string, actor string) error {
	if s.outbox == nil || len(usernames) == 0 {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	otx := s.outbox.WithTx(tx)
	for _, username := range usernames {
		ev := events.TaskAssignedEvent{
			EventType:  "task_assigned",
			RequestID:  rid,
			TaskID:     t.TaskID,
			TaskName:   t.Name,
			Username:   username,
			AssignedBy: actor,
			OccurredAt: time.Now().UTC(),
		}
		row, err := kafka.NewOutboxEvent(rid, describerKind, strconv.Itoa(t.TaskID), ev.EventType, events.TaskAssignedTopic, ev)
		if err != nil {
			return err
		}
		if err := otx.Create(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func uniqueInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
