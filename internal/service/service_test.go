package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/donation-service/internal/config"
	"github.com/Dan9191/donation-service/internal/models"
)

const testSecret = "test-secret"

// fakeStore is an in-memory Store implementation
type fakeStore struct {
	users     map[int64]*models.User
	causes    map[int64]*models.Cause
	donations []models.Donation
	events    map[string]bool
	nextID    int64
	lookupErr error // injected infrastructure failure for user lookups
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[int64]*models.User{},
		causes: map[int64]*models.Cause{},
		events: map[string]bool{},
	}
}

func (f *fakeStore) CreateUser(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.ErrDuplicateRegistration
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) FindUserByUsername(username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) CreateCause(cause *models.Cause) error {
	f.nextID++
	cause.ID = f.nextID
	copied := *cause
	f.causes[cause.ID] = &copied
	return nil
}

func (f *fakeStore) FindCauseByID(id int64) (*models.Cause, error) {
	if c, ok := f.causes[id]; ok {
		return c, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListCauses() ([]models.Cause, error) {
	causes := []models.Cause{}
	for _, c := range f.causes {
		causes = append(causes, *c)
	}
	return causes, nil
}

func (f *fakeStore) UpdateCause(cause *models.Cause) error {
	if _, ok := f.causes[cause.ID]; !ok {
		return models.ErrNotFound
	}
	copied := *cause
	f.causes[cause.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteCause(id int64) error {
	if _, ok := f.causes[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.causes, id)
	return nil
}

func (f *fakeStore) CreateDonation(donation *models.Donation) error {
	if f.events[donation.ProviderEventID] {
		return models.ErrEventAlreadyProcessed
	}
	f.events[donation.ProviderEventID] = true
	f.nextID++
	donation.ID = f.nextID
	donation.CreatedAt = time.Now()
	f.donations = append(f.donations, *donation)
	return nil
}

func (f *fakeStore) ListDonations() ([]models.Donation, error) {
	return f.donations, nil
}

// fakeProvider is a canned PaymentProvider
type fakeProvider struct {
	event         *models.PaymentEvent
	parseErr      error
	checkoutURL   string
	checkoutErr   error
	checkoutCalls int
}

func (f *fakeProvider) CreateCheckoutSession(causeID int64) (string, error) {
	f.checkoutCalls++
	return f.checkoutURL, f.checkoutErr
}

func (f *fakeProvider) ParseEvent(payload []byte, sigHeader string) (*models.PaymentEvent, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.event, nil
}

// fakeMailer records receipts
type fakeMailer struct {
	receipts []string
	err      error
}

func (f *fakeMailer) SendDonationReceipt(to, username, causeName string, amount float64) error {
	if f.err != nil {
		return f.err
	}
	f.receipts = append(f.receipts, to)
	return nil
}

func newTestService(store *fakeStore, provider *fakeProvider, mailer *fakeMailer) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: testSecret}
	return NewService(store, provider, mailer, logger, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProvider{}, &fakeMailer{})

	user, err := svc.Register("alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	token, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProvider{}, &fakeMailer{})

	_, err := svc.Register("alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register("bob", "alice@example.com", "other")
	assert.ErrorIs(t, err, models.ErrDuplicateRegistration)

	// Distinct email and username still works
	_, err = svc.Register("bob", "bob@example.com", "other")
	assert.NoError(t, err)
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	_, err := svc.Register("alice", "not-an-email", "s3cret")
	assert.ErrorIs(t, err, models.ErrInvalidEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProvider{}, &fakeMailer{})

	_, err := svc.Register("alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	// Wrong password and unknown username are indistinguishable
	_, err = svc.Login("alice", "wrong")
	wrongPass := err
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPass, err)
}

func TestLoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	store := newFakeStore()
	store.lookupErr = assert.AnError
	svc := newTestService(store, &fakeProvider{}, &fakeMailer{})

	// An infrastructure failure must not masquerade as a credential failure
	_, err := svc.Login("alice", "s3cret")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestVerifyTokenForgedSignature(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyToken(tokenString)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	}
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeProvider{}, &fakeMailer{})

	user, err := svc.Register("alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	token, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)

	resolved, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeProvider{}, &fakeMailer{})

	// Validly signed token for a user that does not exist
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "999",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Authenticate(tokenString)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// Bad token collapses to the same error
	_, badErr := svc.Authenticate("garbage")
	assert.True(t, errors.Is(badErr, models.ErrUnauthorized))
	assert.Equal(t, err, badErr)
}
