// Package announce posts the current day/on-call assignment on a cron
// schedule. It is a pure reader of the schedule engine: it never mutates
// shift lists.
package announce

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dutyboard/internal/roster"
	"dutyboard/internal/schedule"
	logx "dutyboard/pkg/logx"
)

const defaultSpec = "0 9 * * *"

// Sender delivers announcement text; the telegram adapter implements it.
type Sender interface {
	SendText(ctx context.Context, text string) error
}

type Config struct {
	Enabled  bool
	Spec     string // 5-field cron expression
	Timezone string // IANA name; empty means UTC
}

type Service struct {
	log    logx.Logger
	store  *schedule.Store
	roster *roster.Roster
	sender Sender

	mu  sync.Mutex
	cfg Config
	c   *cron.Cron
	loc *time.Location
}

func New(cfg Config, store *schedule.Store, r *roster.Roster, sender Sender, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{log: log, store: store, roster: r, sender: sender, cfg: cfg}
}

// Start registers the cron entry. Disabled config or a missing sender is
// a quiet no-op so the daemon can run headless.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.Enabled || s.sender == nil || s.c != nil {
		return nil
	}
	loc, err := loadLocation(s.cfg.Timezone)
	if err != nil {
		return err
	}
	spec := strings.TrimSpace(s.cfg.Spec)
	if spec == "" {
		spec = defaultSpec
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, func() { s.fire(ctx) }); err != nil {
		return fmt.Errorf("announce spec %q: %w", spec, err)
	}
	s.c = c
	s.loc = loc
	c.Start()
	s.log.Info("announce scheduled", logx.String("spec", spec), logx.String("tz", loc.String()))
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Apply restarts the cron entry when the announce settings changed.
func (s *Service) Apply(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	same := cfg == s.cfg
	s.mu.Unlock()
	if same {
		return nil
	}
	s.Stop()
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return s.Start(ctx)
}

func (s *Service) fire(ctx context.Context) {
	s.mu.Lock()
	loc := s.loc
	s.mu.Unlock()
	if loc == nil {
		loc = time.UTC
	}

	today := schedule.DateOf(time.Now().In(loc))
	msg := s.Compose(today)
	if msg == "" {
		s.log.Debug("announce skipped; nobody assigned", logx.String("date", string(today)))
		return
	}

	sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.sender.SendText(sctx, msg); err != nil {
		s.log.Warn("announce send failed", logx.Err(err))
		return
	}
	s.log.Info("announced", logx.String("date", string(today)))
}

// Compose renders the announcement for a day, "" when no one is assigned.
func (s *Service) Compose(today schedule.Date) string {
	year := string(today)[:4]
	yd := s.store.Year(year)
	a := schedule.TodayAssignments(yd.OnDuty, yd.OnCall, s.roster.ByID(), today)
	if a.Day == nil && a.Night == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s", today)
	if a.Day != nil {
		fmt.Fprintf(&b, "\nOn duty: %s", a.Day.FullName)
	}
	if a.Night != nil {
		fmt.Fprintf(&b, "\nOn call: %s", a.Night.FullName)
	}
	return b.String()
}

func loadLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("announce timezone %q: %w", tz, err)
	}
	return loc, nil
}
