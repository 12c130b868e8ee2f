// Package telegram is the presentation collaborator: a long-poll bot that
// reads the engine's outputs and feeds it mutation requests and import
// files. It carries no schedule logic of its own.
package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"dutyboard/internal/roster"
	"dutyboard/internal/schedule"
	"dutyboard/internal/tabular"
	logx "dutyboard/pkg/logx"
)

type Config struct {
	Token       string
	ChatID      int64 // announcements and, when set, the only chat served
	PollTimeout time.Duration
	RatePerSec  int
}

type Adapter struct {
	cfg    Config
	log    logx.Logger
	engine *schedule.Engine
	roster *roster.Roster

	bot     *tele.Bot
	limiter *rate.Limiter

	runMu   sync.Mutex
	running bool
	stopped chan struct{}
}

func New(cfg Config, engine *schedule.Engine, r *roster.Roster, log logx.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Adapter{
		cfg:     cfg,
		log:     log,
		engine:  engine,
		roster:  r,
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Start registers handlers and begins long polling. It returns once the
// poll loop is running; Stop() or ctx cancellation ends it.
func (a *Adapter) Start(ctx context.Context) {
	a.runMu.Lock()
	if a.running {
		a.runMu.Unlock()
		return
	}
	a.running = true
	a.stopped = make(chan struct{})
	a.runMu.Unlock()

	a.bot.Handle("/today", a.guard(a.handleToday))
	a.bot.Handle("/oncall", a.guard(a.handleOnCall))
	a.bot.Handle("/duty", a.guard(a.handleDuty))
	a.bot.Handle("/undo", a.guard(a.handleUndo))
	a.bot.Handle("/export", a.guard(a.handleExport))
	a.bot.Handle(tele.OnDocument, a.guard(a.handleImport))

	go func() {
		<-ctx.Done()
		a.Stop()
	}()
	go func() {
		defer close(a.stopped)
		a.bot.Start()
	}()
	a.log.Info("telegram adapter started")
}

func (a *Adapter) Stop() {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	a.bot.Stop()
	<-a.stopped
	a.log.Info("telegram adapter stopped")
}

// SendText posts to the configured chat, throttled. Implements the
// announce.Sender interface.
func (a *Adapter) SendText(ctx context.Context, text string) error {
	if a.cfg.ChatID == 0 {
		return errors.New("telegram chat_id is not configured")
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := a.bot.Send(tele.ChatID(a.cfg.ChatID), text)
	return err
}

// guard rejects chats other than the configured one (when set) and
// funnels handler errors into the log instead of telebot's default.
func (a *Adapter) guard(fn func(c tele.Context) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		if a.cfg.ChatID != 0 && c.Chat() != nil && c.Chat().ID != a.cfg.ChatID {
			return nil
		}
		if err := fn(c); err != nil {
			a.log.Warn("handler failed", logx.String("text", c.Text()), logx.Err(err))
			return c.Send("Something went wrong; see the logs.")
		}
		return nil
	}
}

func (a *Adapter) reply(c tele.Context, what interface{}) error {
	if err := a.limiter.Wait(context.Background()); err != nil {
		return err
	}
	return c.Send(what)
}

// yearArg picks the first 4-digit argument, defaulting to the current year.
func yearArg(c tele.Context) string {
	for _, arg := range c.Args() {
		if len(arg) == 4 && strings.Trim(arg, "0123456789") == "" {
			return arg
		}
	}
	return time.Now().Format("2006")
}

func (a *Adapter) handleToday(c tele.Context) error {
	today := schedule.DateOf(time.Now())
	yd := a.engine.Store().Year(string(today)[:4])
	as := schedule.TodayAssignments(yd.OnDuty, yd.OnCall, a.roster.ByID(), today)

	day, night := "nobody", "nobody"
	if as.Day != nil {
		day = as.Day.FullName
	}
	if as.Night != nil {
		night = as.Night.FullName
	}
	return a.reply(c, fmt.Sprintf("%s\nOn duty: %s\nOn call: %s", today, day, night))
}

func (a *Adapter) handleOnCall(c tele.Context) error {
	year := yearArg(c)
	yd := a.engine.Store().Year(year)
	if len(yd.OnCall) == 0 {
		return a.reply(c, "No on-call shifts for "+year+".")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "On-call %s:", year)
	byID := a.roster.ByID()
	for _, s := range yd.OnCall {
		name := s.AssigneeID
		if m, ok := byID[s.AssigneeID]; ok {
			name = m.FullName
		}
		fmt.Fprintf(&b, "\n%s .. %s  %s (%s)", s.Start, s.End, name, s.Type)
	}
	return a.reply(c, b.String())
}

func (a *Adapter) handleDuty(c tele.Context) error {
	year := yearArg(c)
	yd := a.engine.Store().Year(year)
	if len(yd.OnDuty) == 0 {
		return a.reply(c, "No on-duty shifts for "+year+".")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "On-duty %s:", year)
	byID := a.roster.ByID()
	for _, s := range yd.OnDuty {
		name := s.AssigneeID
		if m, ok := byID[s.AssigneeID]; ok {
			name = m.FullName
		}
		fmt.Fprintf(&b, "\n%s .. %s  %s", s.Start, s.End, name)
	}
	return a.reply(c, b.String())
}

func (a *Adapter) handleUndo(c tele.Context) error {
	h := a.engine.History(yearArg(c))
	if !h.Undo() {
		return a.reply(c, "Nothing to undo.")
	}
	return a.reply(c, "Reverted the last change for "+h.Year()+".")
}

func (a *Adapter) handleExport(c tele.Context) error {
	year := yearArg(c)
	yd := a.engine.Store().Year(year)
	byID := a.roster.ByID()

	kind := "oncall"
	for _, arg := range c.Args() {
		if arg == "duty" || arg == "oncall" {
			kind = arg
		}
	}

	var buf []byte
	if kind == "duty" {
		buf = tabular.ExportOnDuty(yd.OnDuty, byID)
	} else {
		buf = tabular.ExportOnCall(yd.OnCall, byID)
	}
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(buf)),
		FileName: fmt.Sprintf("%s_%s.csv", kind, year),
	}
	return a.reply(c, doc)
}

// handleImport accepts a CSV document named "oncall*.csv" or "duty*.csv"
// and replaces the matching list for the year (caption or current).
func (a *Adapter) handleImport(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil || !strings.HasSuffix(strings.ToLower(doc.FileName), ".csv") {
		return nil
	}
	name := strings.ToLower(doc.FileName)

	rc, err := a.bot.File(&doc.File)
	if err != nil {
		return fmt.Errorf("download %s: %w", doc.FileName, err)
	}
	defer rc.Close()
	buf, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", doc.FileName, err)
	}

	year := time.Now().Format("2006")
	if cpt := strings.TrimSpace(c.Message().Caption); len(cpt) == 4 && strings.Trim(cpt, "0123456789") == "" {
		year = cpt
	}
	h := a.engine.History(year)
	byEmail := a.roster.ByEmail()

	switch {
	case strings.HasPrefix(name, "duty"):
		list, err := tabular.ImportOnDuty(buf, byEmail)
		if err != nil {
			return a.reply(c, "Import failed: "+err.Error())
		}
		h.SetOnDuty(list)
		return a.reply(c, fmt.Sprintf("Imported %d on-duty shifts into %s.", len(list), year))
	case strings.HasPrefix(name, "oncall"):
		list, err := tabular.ImportOnCall(buf, byEmail)
		if err != nil {
			return a.reply(c, "Import failed: "+err.Error())
		}
		h.SetOnCall(list)
		return a.reply(c, fmt.Sprintf("Imported %d on-call shifts into %s.", len(list), year))
	default:
		return a.reply(c, "Name the file oncall_<year>.csv or duty_<year>.csv.")
	}
}
