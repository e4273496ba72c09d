package domain

import "context"

// EnrollmentRepository captures persistence operations.
type EnrollmentRepository interface {
	ListActivities(ctx context.Context) ([]Activity, error)
	FindActivityByName(ctx context.Context, name string) (*Activity, error)
	FindParticipantByEmail(ctx context.Context, email string) (*Participant, error)
	Enrolled(ctx context.Context, activityID int64, email string) (bool, error)
	Enroll(ctx context.Context, activityID int64, email string) error
	Withdraw(ctx context.Context, activityID int64, email string) error
}

// Service orchestrates enrollment workflows.
type Service struct {
	repo EnrollmentRepository
}

// NewService constructs a Service.
func NewService(repo EnrollmentRepository) *Service {
	return &Service{repo: repo}
}

// ListActivities returns every activity with its participants loaded.
func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	return s.repo.ListActivities(ctx)
}

// Signup enrolls the email in the named activity, creating the participant
// row lazily. The association table's composite primary key backs the
// application-level duplicate check against concurrent requests.
func (s *Service) Signup(ctx context.Context, activityName, email string) error {
	activity, err := s.repo.FindActivityByName(ctx, activityName)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}

	enrolled, err := s.repo.Enrolled(ctx, activity.ID, email)
	if err != nil {
		return err
	}
	if enrolled {
		return ErrAlreadySignedUp
	}

	return s.repo.Enroll(ctx, activity.ID, email)
}

// Unregister removes the email's enrollment in the named activity. The
// participant row itself is never deleted.
func (s *Service) Unregister(ctx context.Context, activityName, email string) error {
	activity, err := s.repo.FindActivityByName(ctx, activityName)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}

	participant, err := s.repo.FindParticipantByEmail(ctx, email)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrNotSignedUp
	}

	enrolled, err := s.repo.Enrolled(ctx, activity.ID, email)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotSignedUp
	}

	return s.repo.Withdraw(ctx, activity.ID, email)
}
