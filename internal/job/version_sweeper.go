package job

import (
	"context"
	"time"

	"github.com/emrgen/article/internal/store"
	"github.com/sirupsen/logrus"
)

// VersionSweeper archives superseded versions that have not been touched
// within the retention window. The actual version and the newest version of
// each language are never archived, so a language always keeps a usable
// lineage tip.
type VersionSweeper struct {
	store     store.Store
	schedule  string
	retention time.Duration
}

func NewVersionSweeper(store store.Store, schedule string, retention time.Duration) *VersionSweeper {
	return &VersionSweeper{
		store:     store,
		schedule:  schedule,
		retention: retention,
	}
}

func (s *VersionSweeper) Name() string {
	return "version_sweeper"
}

func (s *VersionSweeper) Schedule() string {
	return s.schedule
}

func (s *VersionSweeper) Run() {
	cutoff := time.Now().Add(-s.retention)
	count, err := s.store.ArchiveVersionsBefore(context.TODO(), cutoff)
	if err != nil {
		logrus.Errorf("error archiving versions: %v", err)
		return
	}
	if count > 0 {
		logrus.Infof("archived %d versions older than %s", count, cutoff.Format(time.RFC3339))
	}
}
