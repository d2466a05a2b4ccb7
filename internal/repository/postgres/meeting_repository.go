package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

const meetingColumns = `id, title, description, meeting_link, date::text, start_time, end_time,
		owner_id, participants, participant_emails, status, COALESCE(group_id::text, ''), reminder_sent, created_at, updated_at`

type MeetingRepository struct {
	base
}

func NewMeetingRepository(pool *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{base{pool: pool}}
}

// GetByID fetches a meeting by id. Returns nil when it does not exist.
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting by id: %w", err)
	}

	return meeting, nil
}

// ListForUser returns meetings where the user is the owner or appears in the
// participant emails. The single query keeps the result deduplicated.
func (r *MeetingRepository) ListForUser(ctx context.Context, userID, email string) ([]*model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE owner_id = $1 OR ($2 <> '' AND $2 = ANY(participant_emails))
		ORDER BY date, start_time
	`

	rows, err := r.pool.Query(ctx, query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("list meetings for user: %w", err)
	}
	defer rows.Close()

	return collectMeetings(rows)
}

// CreateScheduled inserts a new scheduled meeting. The caller's conflict
// check runs inside the transaction, after an advisory lock on the owner's
// day, so two concurrent bookings of the same day serialize: the loser sees
// the winner's committed row.
func (r *MeetingRepository) CreateScheduled(ctx context.Context, meeting *model.Meeting, check repository.ConflictCheck) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockKeyed(ctx, tx, dayKey(meeting.OwnerID, meeting.Date)); err != nil {
		return fmt.Errorf("lock owner day: %w", err)
	}

	sameDay, err := scheduledForDay(ctx, tx, meeting.OwnerID, meeting.Date)
	if err != nil {
		return err
	}
	if err := check(sameDay); err != nil {
		return err
	}

	query := `
		INSERT INTO meetings (id, title, description, meeting_link, date, start_time, end_time,
			owner_id, participants, participant_emails, status, group_id)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, NULLIF($12, '')::uuid)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		meeting.ID,
		meeting.Title,
		meeting.Description,
		meeting.MeetingLink,
		meeting.Date,
		meeting.StartTime,
		meeting.EndTime,
		meeting.OwnerID,
		meeting.Participants,
		meeting.ParticipantEmails,
		meeting.Status,
		meeting.GroupID,
	).Scan(&meeting.CreatedAt, &meeting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// UpdateScheduled applies new fields to an existing scheduled meeting. The
// transaction re-verifies existence and ownership at commit time and runs
// the caller's conflict check against the target day (the meeting's own row
// is excluded by the caller).
func (r *MeetingRepository) UpdateScheduled(ctx context.Context, meeting *model.Meeting, check repository.ConflictCheck) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockKeyed(ctx, tx, dayKey(meeting.OwnerID, meeting.Date)); err != nil {
		return fmt.Errorf("lock owner day: %w", err)
	}

	var ownerID string
	var status model.MeetingStatus
	err = tx.QueryRow(ctx, `SELECT owner_id, status FROM meetings WHERE id = $1 FOR UPDATE`, meeting.ID).
		Scan(&ownerID, &status)
	if err != nil {
		if isNoRows(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("load meeting for update: %w", err)
	}
	if ownerID != meeting.OwnerID {
		return repository.ErrNotOwner
	}
	if status == model.MeetingStatusCancelled {
		return repository.ErrAlreadyCancelled
	}

	sameDay, err := scheduledForDay(ctx, tx, meeting.OwnerID, meeting.Date)
	if err != nil {
		return err
	}
	if err := check(sameDay); err != nil {
		return err
	}

	query := `
		UPDATE meetings
		SET title = $2, description = $3, meeting_link = $4, date = $5::date,
			start_time = $6, end_time = $7, participants = $8, participant_emails = $9,
			group_id = NULLIF($10, '')::uuid, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		meeting.ID,
		meeting.Title,
		meeting.Description,
		meeting.MeetingLink,
		meeting.Date,
		meeting.StartTime,
		meeting.EndTime,
		meeting.Participants,
		meeting.ParticipantEmails,
		meeting.GroupID,
	).Scan(&meeting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Cancel marks a meeting cancelled after re-verifying existence and
// ownership. Cancelled is terminal, so a second cancel fails.
func (r *MeetingRepository) Cancel(ctx context.Context, id, ownerID string) (*model.Meeting, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	meeting, err := scanMeeting(tx.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load meeting for cancel: %w", err)
	}
	if meeting.OwnerID != ownerID {
		return nil, repository.ErrNotOwner
	}
	if meeting.Status == model.MeetingStatusCancelled {
		return nil, repository.ErrAlreadyCancelled
	}

	err = tx.QueryRow(
		ctx,
		`UPDATE meetings SET status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		id, model.MeetingStatusCancelled,
	).Scan(&meeting.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("cancel meeting: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	meeting.Status = model.MeetingStatusCancelled
	return meeting, nil
}

// ListDueReminders returns scheduled meetings on the given date starting
// within [fromTime, toTime] that have not been reminded yet. Zero-padded
// HH:MM strings compare correctly as text.
func (r *MeetingRepository) ListDueReminders(ctx context.Context, date string, fromTime, toTime string) ([]*model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE date = $1::date AND status = $2 AND reminder_sent = false
			AND start_time >= $3 AND start_time <= $4
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, date, model.MeetingStatusScheduled, fromTime, toTime)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	return collectMeetings(rows)
}

// MarkReminderSent flags a meeting so its reminder goes out exactly once.
func (r *MeetingRepository) MarkReminderSent(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE meetings SET reminder_sent = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// dayKey is the advisory lock key for one owner's calendar day.
func dayKey(ownerID, date string) string {
	return ownerID + ":" + date
}

// scheduledForDay loads the owner's scheduled meetings for one date inside
// the current transaction.
func scheduledForDay(ctx context.Context, tx pgx.Tx, ownerID, date string) ([]*model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE owner_id = $1 AND date = $2::date AND status = $3
	`

	rows, err := tx.Query(ctx, query, ownerID, date, model.MeetingStatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("get meetings for day: %w", err)
	}
	defer rows.Close()

	return collectMeetings(rows)
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	var meeting model.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&meeting.Description,
		&meeting.MeetingLink,
		&meeting.Date,
		&meeting.StartTime,
		&meeting.EndTime,
		&meeting.OwnerID,
		&meeting.Participants,
		&meeting.ParticipantEmails,
		&meeting.Status,
		&meeting.GroupID,
		&meeting.ReminderSent,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func collectMeetings(rows pgx.Rows) ([]*model.Meeting, error) {
	var meetings []*model.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return meetings, nil
}
