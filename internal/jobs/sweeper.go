package jobs

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/adamstosho/GroChain-sub004/internal/services"
)

const defaultSweepSchedule = "@every 5m"

// SweeperJob periodically marks stale active sessions inactive. It runs off
// the request path and never blocks a request; a LastActivity race with an
// in-flight request is benign (last write wins).
type SweeperJob struct {
	sessions *services.SessionManager
	cron     *cron.Cron
}

// NewSweeperJob creates the session expiry sweeper.
func NewSweeperJob(sessions *services.SessionManager) *SweeperJob {
	return &SweeperJob{
		sessions: sessions,
		cron:     cron.New(),
	}
}

// Start schedules the sweep. The schedule comes from SESSION_SWEEP_SCHEDULE
// (cron or @every syntax), defaulting to every 5 minutes.
func (s *SweeperJob) Start() {
	schedule := os.Getenv("SESSION_SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = defaultSweepSchedule
	}

	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		log.Printf("❌ Invalid sweep schedule %q, falling back to %s: %v", schedule, defaultSweepSchedule, err)
		_, _ = s.cron.AddFunc(defaultSweepSchedule, s.runSweep)
	}

	s.cron.Start()
	log.Printf("✅ Session sweeper scheduled (%s)", schedule)
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *SweeperJob) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏹️  Session sweeper stopped")
}

func (s *SweeperJob) runSweep() {
	swept, err := s.sessions.SweepExpiredSessions()
	if err != nil {
		log.Printf("❌ Session sweep failed: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("🧹 Swept %d expired session(s)", swept)
	}
}
