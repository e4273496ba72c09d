package sqlite

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

type seedActivity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

var sampleActivities = []seedActivity{
	{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		Name:            "Gym Class",
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
}

// Seed loads the sample activities once. It is a no-op when the activities
// table already holds rows, so restarting the process never duplicates data.
func (r *Repository) Seed(ctx context.Context) error {
	count, err := r.db.NewSelect().Model((*ActivityRow)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, sample := range sampleActivities {
			activity := &ActivityRow{
				Name:            sample.Name,
				Description:     sample.Description,
				Schedule:        sample.Schedule,
				MaxParticipants: sample.MaxParticipants,
			}
			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return err
			}

			for _, email := range sample.Participants {
				participant := &ParticipantRow{Email: email}
				if _, err := tx.NewInsert().
					Model(participant).
					On("CONFLICT (email) DO NOTHING").
					Exec(ctx); err != nil {
					return err
				}

				enrollment := &Enrollment{ActivityID: activity.ID, Email: email}
				if _, err := tx.NewInsert().Model(enrollment).Exec(ctx); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
