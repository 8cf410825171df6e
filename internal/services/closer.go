package services

import (
	"context"
	"fmt"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"

	"github.com/robfig/cron/v3"
)

// AuctionCloser periodically records winners of listings whose close time
// has passed. Only the elected leader does the work.
type AuctionCloser struct {
	cron           *cron.Cron
	spec           string
	listings       domain.ListingStore
	ledger         *AuctionLedger
	leaderElection domain.LeaderElection
	instanceID     string
	clock          utils.Clock
	log            logger.Logger
}

func NewAuctionCloser(
	spec string,
	listings domain.ListingStore,
	ledger *AuctionLedger,
	leaderElection domain.LeaderElection,
	instanceID string,
	clock utils.Clock,
	log logger.Logger,
) *AuctionCloser {
	return &AuctionCloser{
		cron:           cron.New(cron.WithSeconds()),
		spec:           spec,
		listings:       listings,
		ledger:         ledger,
		leaderElection: leaderElection,
		instanceID:     instanceID,
		clock:          clock,
		log:            log,
	}
}

func (c *AuctionCloser) Start(ctx context.Context) error {
	c.log.Info("Starting auction closer", "spec", c.spec)

	_, err := c.cron.AddFunc(c.spec, func() {
		if _, err := c.RunOnce(ctx); err != nil {
			c.log.Error("Auction closer run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule auction closer %q: %w", c.spec, err)
	}

	c.cron.Start()
	return nil
}

// Stop waits for a running job to finish and then gives up leadership.
func (c *AuctionCloser) Stop(ctx context.Context) error {
	c.log.Info("Stopping auction closer")
	<-c.cron.Stop().Done()
	return c.leaderElection.ReleaseLeadership(ctx, c.instanceID)
}

// RunOnce resolves every closed listing still waiting for a winner and
// returns how many were resolved. Failures on one listing do not stop the rest.
func (c *AuctionCloser) RunOnce(ctx context.Context) (int, error) {
	isLeader, err := c.leaderElection.IsLeader(ctx, c.instanceID)
	if err != nil {
		return 0, fmt.Errorf("check leadership: %w", err)
	}
	if !isLeader {
		isLeader, err = c.leaderElection.BecomeLeader(ctx, c.instanceID)
		if err != nil {
			return 0, fmt.Errorf("become leader: %w", err)
		}
	}
	if !isLeader {
		c.log.Debug("Not the leader, skipping auction close run", "instance_id", c.instanceID)
		return 0, nil
	}

	pending, err := c.listings.GetUnresolvedClosed(ctx, c.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("load closed listings: %w", err)
	}

	resolved := 0
	for _, listing := range pending {
		resolution, err := c.ledger.ResolveListing(ctx, listing.ID)
		if err != nil {
			c.log.Error("Failed to resolve listing", "listing_id", listing.ID, "error", err)
			continue
		}
		if resolution.Kind != domain.ResolutionNotClosed {
			resolved++
		}
	}

	if resolved > 0 {
		c.log.Info("Auction close run finished", "resolved", resolved, "pending", len(pending))
	}
	return resolved, nil
}
