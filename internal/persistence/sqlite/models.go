// Package sqlite provides the bun-backed store for activities and enrollments.
package sqlite

import (
	"github.com/uptrace/bun"

	"github.com/mergington/activities/internal/domain"
)

// ActivityRow models the persisted row in activities.
type ActivityRow struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID              int64             `bun:"id,pk,autoincrement"`
	Name            string            `bun:"name,notnull,unique"`
	Description     string            `bun:"description,notnull"`
	Schedule        string            `bun:"schedule,notnull"`
	MaxParticipants int               `bun:"max_participants,notnull"`
	Participants    []*ParticipantRow `bun:"m2m:activity_participants,join:Activity=Participant"`
}

// ParticipantRow models the persisted row in participants. Email is the
// natural primary key; rows are created lazily on first signup.
type ParticipantRow struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	Email string `bun:"email,pk"`
}

// Enrollment is the join row linking one participant to one activity.
// The composite primary key enforces pair uniqueness at the store level,
// so a racing duplicate signup fails at commit rather than duplicating
// the association.
type Enrollment struct {
	bun.BaseModel `bun:"table:activity_participants,alias:ap"`

	ActivityID  int64           `bun:"activity_id,pk"`
	Email       string          `bun:"email,pk"`
	Activity    *ActivityRow    `bun:"rel:belongs-to,join:activity_id=id"`
	Participant *ParticipantRow `bun:"rel:belongs-to,join:email=email"`
}

func toActivity(row *ActivityRow) domain.Activity {
	participants := make([]domain.Participant, 0, len(row.Participants))
	for _, p := range row.Participants {
		participants = append(participants, domain.Participant{Email: p.Email})
	}
	return domain.Activity{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Schedule:        row.Schedule,
		MaxParticipants: row.MaxParticipants,
		Participants:    participants,
	}
}
