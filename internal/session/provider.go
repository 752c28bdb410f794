// internal/session/provider.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/pkg/auth"
	"gorm.io/gorm"
)

// ActivitySink receives fire-and-forget activity events
type ActivitySink interface {
	LogUserActivity(ctx context.Context, userID uint, action string, details map[string]interface{}) error
}

// Credentials is what a successful sign-in hands back to the transport layer
type Credentials struct {
	Session      *Session   `json:"-"`
	User         *user.User `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

// Provider wraps the auth primitives and owns sign-in/sign-out. Listeners
// registered with OnChange are invoked on every auth transition so state
// containers can be created or torn down.
type Provider struct {
	db        *gorm.DB
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
	activity  ActivitySink
	log       *logrus.Logger

	mu        sync.Mutex
	listeners []func(*Session)
}

// NewProvider creates a session provider
func NewProvider(db *gorm.DB, cfg *config.Config, activity ActivitySink, log *logrus.Logger) *Provider {
	return &Provider{
		db:        db,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
		activity:  activity,
		log:       log,
	}
}

// OnChange registers a listener for auth transitions
func (p *Provider) OnChange(fn func(*Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// SignIn verifies credentials and issues tokens
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	var u user.User
	err := p.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := p.passwords.VerifyPassword(password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	accessToken, err := p.jwt.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := p.jwt.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	if err := p.db.WithContext(ctx).Model(&u).Update("last_login_at", now).Error; err != nil {
		p.log.WithError(err).Warn("failed to record last login")
	}

	sess := ForUser(u.ID, u.Email, u.IsAdmin)
	p.logActivity(u.ID, "sign_in", nil)
	p.notifyChange(sess)

	return &Credentials{
		Session:      sess,
		User:         &u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignOut ends the session. Token revocation is out of scope; the caller
// discards its tokens and the state manager releases the container.
func (p *Provider) SignOut(sess *Session) {
	if uid, ok := sess.UserID(); ok {
		p.logActivity(uid, "sign_out", nil)
	}
	p.notifyChange(Anonymous())
}

// FromClaims rebuilds a session from validated token claims
func (p *Provider) FromClaims(claims *auth.Claims) *Session {
	return ForUser(claims.UserID, claims.Email, claims.IsAdmin)
}

func (p *Provider) notifyChange(sess *Session) {
	p.mu.Lock()
	listeners := make([]func(*Session), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(sess)
	}
}

// logActivity writes the event in the background; failures are logged and
// dropped
func (p *Provider) logActivity(userID uint, action string, details map[string]interface{}) {
	if p.activity == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.activity.LogUserActivity(ctx, userID, action, details); err != nil {
			p.log.WithError(err).WithField("action", action).Debug("activity log write failed")
		}
	}()
}
