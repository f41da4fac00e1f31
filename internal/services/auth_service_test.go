package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubVerifier returns a canned assertion instead of calling the identity
// provider.
type stubVerifier struct {
	assertion *IdentityAssertion
	err       error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*IdentityAssertion, error) {
	return s.assertion, s.err
}

func newAuthService(db *gorm.DB, assertion *IdentityAssertion) *AuthService {
	return NewAuthService(db, &stubVerifier{assertion: assertion}, NewInviteService(db))
}

func googleAssertion(email string) *IdentityAssertion {
	return &IdentityAssertion{
		SubjectID:     "firebase-uid-" + email,
		Email:         email,
		EmailVerified: true,
		DisplayName:   "Anita",
		Providers: []ProviderAssertion{
			{ProviderID: "google.com", SubjectID: "google-uid-" + email, Email: email},
		},
	}
}

func TestFirebaseSignInCreatesAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, googleAssertion("anita@example.com"))

	resp, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	assert.True(t, resp.NewUser)
	assert.Equal(t, "Anita", resp.FirstName)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "anita@example.com", *resp.Email)
	assert.Regexp(t, regexp.MustCompile(`^anita-[a-z0-9]{5}$`), resp.Username)
	assert.Empty(t, resp.VendorPortalAccounts)

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", resp.ID).Error)
	assert.Equal(t, models.ProviderGoogle, account.AuthProvider)
	assert.Nil(t, account.Password)

	var links []models.AccountProvider
	require.NoError(t, db.Where("account_id = ?", account.ID).Find(&links).Error)
	providers := make(map[string]bool, len(links))
	for _, l := range links {
		providers[l.Provider] = true
	}
	assert.True(t, providers[models.ProviderFirebase])
	assert.True(t, providers[models.ProviderGoogle])
}

func TestFirebaseSignInSecondCallIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, googleAssertion("repeat@example.com"))

	first, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)
	second, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	assert.True(t, first.NewUser)
	assert.False(t, second.NewUser)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFirebaseSignInPhoneUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, &IdentityAssertion{
		SubjectID:   "firebase-uid-phone",
		PhoneNumber: "+15551230099",
		Providers:   []ProviderAssertion{{ProviderID: "phone", SubjectID: "+15551230099"}},
	})

	resp, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	// The plus sign is not a username character; everything else survives.
	assert.Regexp(t, regexp.MustCompile(`^15551230099-[a-z0-9]{5}$`), resp.Username)
	assert.True(t, resp.PhoneVerified)
	assert.Equal(t, models.ProviderEmail, mustLoadAccount(t, db, resp).AuthProvider)
}

func TestFirebaseSignInPasswordRules(t *testing.T) {
	assertion := &IdentityAssertion{
		SubjectID:     "firebase-uid-pw",
		Email:         "pw@example.com",
		EmailVerified: true,
		Providers:     []ProviderAssertion{{ProviderID: "password", SubjectID: "pw@example.com"}},
	}

	db := setupTestDB(t)
	svc := newAuthService(db, assertion)

	_, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.FirebaseSignIn(context.Background(),
		&dto.FirebaseSignInRequest{IDToken: "token", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Seven characters in nine bytes; the minimum counts characters.
	_, err = svc.FirebaseSignIn(context.Background(),
		&dto.FirebaseSignInRequest{IDToken: "token", Password: "kısaşif"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	resp, err := svc.FirebaseSignIn(context.Background(),
		&dto.FirebaseSignInRequest{IDToken: "token", Password: "long-enough-secret"})
	require.NoError(t, err)

	account := mustLoadAccount(t, db, resp)
	require.NotNil(t, account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte("long-enough-secret")))

	// The password rules only apply at creation time.
	_, err = svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	assert.NoError(t, err)
}

func TestFirebaseSignInRejectsUnverifiedEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, &IdentityAssertion{
		SubjectID: "firebase-uid-unv",
		Email:     "unverified@example.com",
	})

	_, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFirebaseSignInRejectsUnknownProvider(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, &IdentityAssertion{
		SubjectID:     "firebase-uid-x",
		Email:         "x@example.com",
		EmailVerified: true,
		Providers:     []ProviderAssertion{{ProviderID: "github.com", SubjectID: "gh-1"}},
	})

	_, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestFirebaseSignInVerifierFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db,
		&stubVerifier{err: errors.New("bad signature")},
		NewInviteService(db))

	_, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestFirebaseSignInSweepsPendingInvites(t *testing.T) {
	db := setupTestDB(t)
	inviter := seedAccount(t, db, "owner@example.com")
	vendor := seedVendor(t, db, inviter.ID, "9400000020")
	invites := NewInviteService(db)
	vendorID := vendor.ID

	inv, err := invites.Create(context.Background(), "invited@example.com",
		InviteTarget{VendorID: &vendorID}, inviter)
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusPending, inv.Status)

	svc := newAuthService(db, googleAssertion("invited@example.com"))
	resp, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	var stored models.Invitation
	require.NoError(t, db.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InviteStatusAccepted, stored.Status)

	// The new membership shows up in the same response.
	require.Len(t, resp.VendorPortalAccounts, 1)
	assert.Equal(t, vendor.ID, resp.VendorPortalAccounts[0].VendorID)
	assert.True(t, resp.VendorPortalAccounts[0].HasVendorAccountAccess)
}

func TestPortalIncludesSuperAdminBranches(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db, googleAssertion("boss@example.com"))

	resp, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	vendor := seedVendor(t, db, resp.ID, "9400000021")
	seedBranch(t, db, vendor.ID, "br010")
	seedBranch(t, db, vendor.ID, "br011")
	require.NoError(t, db.Create(&models.VendorMember{
		ID: uuid.New(), AccountID: resp.ID, VendorID: vendor.ID, IsSuperAdmin: true,
	}).Error)

	again, err := svc.FirebaseSignIn(context.Background(), &dto.FirebaseSignInRequest{IDToken: "token"})
	require.NoError(t, err)

	require.Len(t, again.VendorPortalAccounts, 1)
	portal := again.VendorPortalAccounts[0]
	assert.True(t, portal.IsSuperAdmin)
	// No branch membership rows exist, yet both branches are reachable.
	assert.Len(t, portal.Branches, 2)
	for _, b := range portal.Branches {
		assert.True(t, b.IsSuperAdmin)
		assert.Nil(t, b.VendorBranchMemberID)
	}
}

func TestAccountEmailUniqueAtPersistence(t *testing.T) {
	db := setupTestDB(t)
	seedAccount(t, db, "unique@example.com")

	email := "unique@example.com"
	err := db.Create(&models.Account{
		ID:        uuid.New(),
		FirstName: "Other",
		Username:  GenerateUsername(email, ""),
		Email:     &email,
		IsActive:  true,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProviderUIDClaimedOnce(t *testing.T) {
	db := setupTestDB(t)
	first := seedAccount(t, db, "one@example.com")
	second := seedAccount(t, db, "two@example.com")

	require.NoError(t, db.Create(&models.AccountProvider{
		ID:          uuid.New(),
		AccountID:   first.ID,
		Provider:    models.ProviderFirebase,
		ProviderUID: "subject-shared",
	}).Error)

	// Even under another account and provider tag the subject id stays taken.
	err := db.Create(&models.AccountProvider{
		ID:          uuid.New(),
		AccountID:   second.ID,
		Provider:    models.ProviderGoogle,
		ProviderUID: "subject-shared",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func mustLoadAccount(t *testing.T, db *gorm.DB, resp *dto.FirebaseAuthResponse) *models.Account {
	t.Helper()
	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", resp.ID).Error)
	return &account
}
