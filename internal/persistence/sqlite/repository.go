package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/mergington/activities/internal/domain"
)

// Repository provides SQLite-backed persistence for activities, participants
// and their enrollments.
type Repository struct {
	db *bun.DB
}

// NewRepository constructs a Repository. The join model is registered so bun
// can resolve the many-to-many relation in both directions.
func NewRepository(db *bun.DB) *Repository {
	db.RegisterModel((*Enrollment)(nil))
	return &Repository{db: db}
}

// Init idempotently creates the activities, participants and
// activity_participants tables.
func (r *Repository) Init(ctx context.Context) error {
	models := []interface{}{
		(*ActivityRow)(nil),
		(*ParticipantRow)(nil),
		(*Enrollment)(nil),
	}

	for _, model := range models {
		if _, err := r.db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ListActivities returns all activities with participants loaded through the
// association table.
func (r *Repository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	var rows []*ActivityRow
	if err := r.db.NewSelect().
		Model(&rows).
		Relation("Participants").
		Scan(ctx); err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, toActivity(row))
	}
	return activities, nil
}

// FindActivityByName returns the activity with the exact name, or nil when
// absent.
func (r *Repository) FindActivityByName(ctx context.Context, name string) (*domain.Activity, error) {
	row := new(ActivityRow)
	err := r.db.NewSelect().
		Model(row).
		Relation("Participants").
		Where("a.name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	activity := toActivity(row)
	return &activity, nil
}

// FindParticipantByEmail returns the participant with the exact email, or nil
// when absent.
func (r *Repository) FindParticipantByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	row := new(ParticipantRow)
	err := r.db.NewSelect().
		Model(row).
		Where("p.email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Participant{Email: row.Email}, nil
}

// Enrolled reports whether the (activity, email) association exists.
func (r *Repository) Enrolled(ctx context.Context, activityID int64, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*Enrollment)(nil)).
		Where("ap.activity_id = ? AND ap.email = ?", activityID, email).
		Exists(ctx)
}

// Enroll creates the participant row if absent and inserts the association,
// committing both in a single transaction. A duplicate pair violates the
// association's composite primary key; the loser of a concurrent signup race
// gets ErrAlreadySignedUp instead of a bare constraint error.
func (r *Repository) Enroll(ctx context.Context, activityID int64, email string) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		participant := &ParticipantRow{Email: email}
		if _, err := tx.NewInsert().
			Model(participant).
			On("CONFLICT (email) DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}

		enrollment := &Enrollment{ActivityID: activityID, Email: email}
		_, err := tx.NewInsert().Model(enrollment).Exec(ctx)
		return err
	})

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return domain.ErrAlreadySignedUp
	}
	return err
}

// Withdraw removes the association. The participant row is kept.
func (r *Repository) Withdraw(ctx context.Context, activityID int64, email string) error {
	_, err := r.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("activity_id = ? AND email = ?", activityID, email).
		Exec(ctx)
	return err
}

var _ domain.EnrollmentRepository = (*Repository)(nil)
