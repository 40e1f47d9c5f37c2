// Package session holds the authentication state machine: Anonymous until a
// successful login or restore, back to Anonymous on logout or when the
// gateway reports the credential expired.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clapperhq/clapper/api"
)

// API is the slice of the gateway the session store needs.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	GetRegistrationSettings(ctx context.Context) (*api.RegistrationSettings, error)
	SendVerificationCode(ctx context.Context, email string) (*api.VerificationResponse, error)
	Register(ctx context.Context, details api.RegistrationDetails) (*api.MessageResponse, error)
	SetToken(token string)
	ClearToken()
}

// FavoritesPrimer is the favorite-set coupling: primed after login/restore,
// cleared on logout.
type FavoritesPrimer interface {
	Prime(ctx context.Context) error
	Clear()
}

// Store manages the current session.
type Store struct {
	api     API
	storage *Storage
	nav     Navigator
	logger  zerolog.Logger

	mu                sync.Mutex
	token             string
	profile           *Profile
	emailVerification bool
	newUserVIPDays    int
	favorites         FavoritesPrimer
	onLogout          []func()
}

// NewStore creates a session store. The favorites coupling is wired
// afterwards with SetFavorites because the favorites store needs the
// session for its own auth check.
func NewStore(apiClient API, storage *Storage, nav Navigator, logger zerolog.Logger) *Store {
	return &Store{
		api:     apiClient,
		storage: storage,
		nav:     nav,
		logger:  logger,
		// Safe default until the real setting is fetched.
		emailVerification: true,
	}
}

// SetFavorites wires the favorite-set store.
func (s *Store) SetFavorites(f FavoritesPrimer) {
	s.mu.Lock()
	s.favorites = f
	s.mu.Unlock()
}

// OnLogout registers a hook run whenever the session is torn down. The
// listing stores register their Reset here.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// IsAuthenticated reports whether both a credential and a profile are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.profile != nil
}

// Token returns the current credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns a copy of the current profile, or nil when anonymous.
func (s *Store) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Login authenticates and, on success, persists the session, primes the
// favorite set in the background, and signals a redirect to returnPath (or
// the landing page). On failure nothing changes: login never partially
// applies.
func (s *Store) Login(ctx context.Context, creds api.Credentials, returnPath string) Result {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", creds.Username).Msg("Login failed")
		return failure(api.ErrorMessage(err, "login failed, please try again"))
	}

	profile := &Profile{
		Username:     resp.Username,
		Email:        resp.Email,
		VIPStatus:    resp.VIPStatus,
		VIPExpiresAt: resp.VIPExpiresAt,
	}

	s.mu.Lock()
	s.token = resp.Token
	s.profile = profile
	favorites := s.favorites
	s.mu.Unlock()

	s.api.SetToken(resp.Token)

	if err := s.storage.Save(resp.Token, profile); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist session")
	}

	if favorites != nil {
		go func() {
			if err := favorites.Prime(context.Background()); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to prime favorites after login")
			}
		}()
	}

	s.logger.Info().Str("username", resp.Username).Msg("Logged in")

	if returnPath == "" {
		returnPath = LandingPath
	}
	if s.nav != nil {
		s.nav.Redirect(returnPath)
	}
	return success("")
}

// Logout tears the session down and signals a redirect to the landing page.
// Calling it while already anonymous is a no-op beyond the redirect.
func (s *Store) Logout() {
	s.mu.Lock()
	wasAuthenticated := s.token != "" || s.profile != nil
	s.token = ""
	s.profile = nil
	favorites := s.favorites
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	if wasAuthenticated {
		s.api.ClearToken()
		if err := s.storage.Clear(); err != nil {
			s.logger.Error().Err(err).Msg("Failed to clear persisted session")
		}
		if favorites != nil {
			favorites.Clear()
		}
		for _, fn := range hooks {
			fn()
		}
		s.logger.Info().Msg("Logged out")
	}

	if s.nav != nil {
		s.nav.Redirect(LandingPath)
	}
}

// Restore reinstates a persisted session at startup. The credential is not
// validated against the server; if it has expired the next 401 tears the
// session down.
func (s *Store) Restore() bool {
	token, profile, err := s.storage.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read persisted session")
		return false
	}
	if profile == nil || token == "" {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.profile = profile
	favorites := s.favorites
	s.mu.Unlock()

	s.api.SetToken(token)

	if favorites != nil {
		go func() {
			if err := favorites.Prime(context.Background()); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to prime favorites after restore")
			}
		}()
	}

	s.logger.Debug().Str("username", profile.Username).Msg("Session restored")
	return true
}

// FetchRegistrationSettings loads the server-side registration switches.
// On failure the defaults stand: verification on, no gift days.
func (s *Store) FetchRegistrationSettings(ctx context.Context) {
	settings, err := s.api.GetRegistrationSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch registration settings")
		s.emailVerification = true
		s.newUserVIPDays = 0
		return
	}
	s.emailVerification = settings.EnableEmailVerification
	s.newUserVIPDays = settings.NewUserVIPDays
}

// EmailVerificationEnabled reports whether registering requires a code.
func (s *Store) EmailVerificationEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emailVerification
}

// NewUserVIPDays returns the membership days gifted on registration.
func (s *Store) NewUserVIPDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newUserVIPDays
}

// SendVerificationCode asks the server to mail a code to the address.
func (s *Store) SendVerificationCode(ctx context.Context, email string) Result {
	resp, err := s.api.SendVerificationCode(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to send verification code")
		return failure(api.ErrorMessage(err, "failed to send verification code"))
	}
	return success(resp.Message)
}

// Register creates a new account. The caller logs in separately afterwards.
func (s *Store) Register(ctx context.Context, details api.RegistrationDetails) Result {
	resp, err := s.api.Register(ctx, details)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", details.Username).Msg("Registration failed")
		return failure(api.ErrorMessage(err, "registration failed"))
	}
	return success(resp.Message)
}
