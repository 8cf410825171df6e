package leader

import (
	"context"

	"auction-ledger/internal/domain"
)

// LocalLeaderElection is used when a single instance runs without Redis: that
// instance is always the leader.
type LocalLeaderElection struct{}

func NewLocalLeaderElection() *LocalLeaderElection {
	return &LocalLeaderElection{}
}

var _ domain.LeaderElection = (*LocalLeaderElection)(nil)

func (LocalLeaderElection) BecomeLeader(ctx context.Context, instanceID string) (bool, error) {
	return true, nil
}

func (LocalLeaderElection) IsLeader(ctx context.Context, instanceID string) (bool, error) {
	return true, nil
}

func (LocalLeaderElection) ReleaseLeadership(ctx context.Context, instanceID string) error {
	return nil
}
