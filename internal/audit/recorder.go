package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"icc-dashboard/internal/models"

	"github.com/sirupsen/logrus"
)

// ErrDisabled is returned by reads when no audit database is configured.
var ErrDisabled = errors.New("audit log is not configured")

type LoginStore interface {
	CreateLoginLog(ctx context.Context, log *models.LoginLog) (int, error)
	CloseSession(ctx context.Context, sessionID, reason string) error
	ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error)
}

type ActionStore interface {
	CreateActionLog(ctx context.Context, log *models.AdminActionLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AdminActionLog, error)
}

const (
	queueSize    = 256
	writeTimeout = 5 * time.Second
)

// Recorder writes audit rows off the request path. A nil *Recorder records
// nothing, so callers never branch on whether auditing is enabled.
// Failures are logged and never surface to the user.
type Recorder struct {
	logins  LoginStore
	actions ActionStore
	log     *logrus.Logger

	queue chan func(context.Context) error
	wg    sync.WaitGroup
	once  sync.Once
}

func NewRecorder(logins LoginStore, actions ActionStore, log *logrus.Logger) *Recorder {
	r := &Recorder{
		logins:  logins,
		actions: actions,
		log:     log,
		queue:   make(chan func(context.Context) error, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for job := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := job(ctx); err != nil {
			r.log.WithError(err).WithField("component", "audit").Warn("failed to write audit log")
		}
		cancel()
	}
}

func (r *Recorder) enqueue(job func(context.Context) error) {
	select {
	case r.queue <- job:
	default:
		r.log.WithField("component", "audit").Warn("audit queue full, dropping entry")
	}
}

// Login records a successful sign-in.
func (r *Recorder) Login(user models.User, sessionID, ip, userAgent string) {
	if r == nil {
		return
	}
	entry := &models.LoginLog{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	r.enqueue(func(ctx context.Context) error {
		_, err := r.logins.CreateLoginLog(ctx, entry)
		return err
	})
}

// Logout closes the open login of sessionID. reason is "user" or
// "unauthorized".
func (r *Recorder) Logout(sessionID, reason string) {
	if r == nil {
		return
	}
	r.enqueue(func(ctx context.Context) error {
		return r.logins.CloseSession(ctx, sessionID, reason)
	})
}

// Action records a mutating admin action and whether the backend accepted it.
func (r *Recorder) Action(actor *models.User, actionType, targetType string, targetID *int, description string, succeeded bool, ip string) {
	if r == nil || actor == nil {
		return
	}
	entry := &models.AdminActionLog{
		AdminUserID: actor.ID,
		AdminEmail:  actor.Email,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		Succeeded:   succeeded,
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	r.enqueue(func(ctx context.Context) error {
		return r.actions.CreateActionLog(ctx, entry)
	})
}

func (r *Recorder) RecentLogins(ctx context.Context, limit int) ([]models.LoginLog, error) {
	if r == nil {
		return nil, ErrDisabled
	}
	return r.logins.ListRecent(ctx, limit)
}

func (r *Recorder) RecentActions(ctx context.Context, limit int) ([]models.AdminActionLog, error) {
	if r == nil {
		return nil, ErrDisabled
	}
	return r.actions.ListRecent(ctx, limit)
}

// Close flushes queued entries and stops the writer.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		close(r.queue)
		r.wg.Wait()
	})
}
