package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/money"
	domainNetwork "prizzys-backend/internal/domain/network"
	domainSession "prizzys-backend/internal/domain/session"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	userUC "prizzys-backend/internal/usecase/user"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// InviteResolver accepts pending invites for a freshly registered loanee.
type InviteResolver interface {
	ResolveOnRegistration(ctx context.Context, r uow.Repos, email, loaneeID string) ([]domainNetwork.Link, error)
}

// LinkProjector mirrors edges created during registration once they commit.
type LinkProjector interface {
	Project(ctx context.Context, links ...domainNetwork.Link)
}

type Usecase struct {
	uow       uow.UnitOfWork
	invites   InviteResolver
	projector LinkProjector
	sessions  domainSession.Store
	opts      Options
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, invites InviteResolver, p LinkProjector, sessions domainSession.Store, opts Options, log *zap.Logger) *Usecase {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Usecase{
		uow:       tx,
		invites:   invites,
		projector: p,
		sessions:  sessions,
		opts:      opts,
		validate:  validator.New(),
		log:       log,
		now:       time.Now,
	}
}

// Register creates a loaner or loanee account and signs it in. A new loanee
// joins the network of every loaner that invited their email.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrInvalidInput)
	}
	if in.Role == domainUser.RoleAdmin {
		return nil, fmt.Errorf("admin accounts cannot self-register: %w", domainUser.ErrWrongRole)
	}
	cur, err := money.Parse(in.Currency)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrInvalidInput)
	}
	if cur == "" {
		cur = money.DefaultCurrency
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	usr := &domainUser.User{
		Name:             in.Name,
		Email:            domainUser.NormalizeEmail(in.Email),
		Phone:            in.Phone,
		Role:             in.Role,
		PasswordHash:     string(hash),
		Currency:         cur,
		IsAcceptingLoans: in.Role == domainUser.RoleLoaner,
		Network:          []string{},
	}

	var links []domainNetwork.Link
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		switch _, err := r.Users.GetByEmail(ctx, usr.Email); {
		case err == nil:
			return domainUser.ErrDuplicateEmail
		case !errors.Is(err, domainUser.ErrNotFound):
			return err
		}
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		if !usr.IsLoanee() {
			return nil
		}
		var err error
		links, err = u.invites.ResolveOnRegistration(ctx, r, usr.Email, usr.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		usr.Network = append(usr.Network, l.LoanerID)
	}
	u.projector.Project(ctx, links...)
	u.log.Info("user registered",
		zap.String("user_id", usr.ID),
		zap.String("role", string(usr.Role)),
		zap.Int("invites_resolved", len(links)))
	return u.issue(ctx, usr)
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*Result, error) {
	var usr *domainUser.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		found, err := r.Users.GetByEmail(ctx, domainUser.NormalizeEmail(email))
		if err != nil {
			return err
		}
		usr, err = userUC.Load(ctx, r, found.ID)
		return err
	})
	if errors.Is(err, domainUser.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u.issue(ctx, usr)
}

// CurrentUser resolves a bearer token to its live session and a fresh user record.
func (u *Usecase) CurrentUser(ctx context.Context, token string) (*domainUser.User, *domainSession.Session, error) {
	claims, err := u.parse(token)
	if err != nil {
		return nil, nil, err
	}
	sess, err := u.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if sess.UserID != claims.Subject {
		return nil, nil, ErrInvalidToken
	}

	var usr *domainUser.User
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		usr, err = userUC.Load(ctx, r, sess.UserID)
		return err
	})
	if errors.Is(err, domainUser.ErrNotFound) {
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return usr, sess, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	claims, err := u.parse(token)
	if err != nil {
		return err
	}
	if err := u.sessions.Delete(ctx, claims.ID); err != nil {
		return err
	}
	u.publish(ctx, domainSession.Event{Kind: domainSession.EventLogout, SessionID: claims.ID, UserID: claims.Subject, At: u.now().UTC()})
	return nil
}

// Subscribe yields the signed-in user after every login and nil after every
// logout, until ctx is done.
func (u *Usecase) Subscribe(ctx context.Context, userID string) (<-chan *domainUser.User, error) {
	events, err := u.sessions.Subscribe(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(chan *domainUser.User)
	go func() {
		defer close(out)
		for ev := range events {
			var usr *domainUser.User
			if ev.Kind == domainSession.EventLogin {
				err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
					var err error
					usr, err = userUC.Load(ctx, r, ev.UserID)
					return err
				})
				if err != nil {
					u.log.Warn("session: reload user failed", zap.String("user_id", ev.UserID), zap.Error(err))
					continue
				}
			}
			select {
			case out <- usr:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (u *Usecase) issue(ctx context.Context, usr *domainUser.User) (*Result, error) {
	now := u.now().UTC()
	exp := now.Add(u.opts.TTL)
	claims := Claims{
		Role: usr.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   usr.ID,
			Issuer:    u.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	sess := domainSession.Session{ID: claims.ID, UserID: usr.ID, Role: usr.Role, IssuedAt: now, ExpiresAt: exp}
	if err := u.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	u.publish(ctx, domainSession.Event{Kind: domainSession.EventLogin, SessionID: sess.ID, UserID: usr.ID, At: now})
	return &Result{Token: token, ExpiresAt: exp, User: usr}, nil
}

func (u *Usecase) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return u.opts.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(u.opts.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (u *Usecase) publish(ctx context.Context, ev domainSession.Event) {
	if err := u.sessions.Publish(ctx, ev); err != nil {
		u.log.Warn("session: publish failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
	}
}
