package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid authentication credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrPasswordRequired     = errors.New("password is required for email sign-in")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrUnsupportedProvider  = errors.New("unsupported provider")
)

const minPasswordLength = 8

var usernameDisallowed = regexp.MustCompile(`[^a-z0-9\-_]`)

// GenerateUsername derives a username from the email local part or the phone
// number, disambiguated with a 5-char random suffix, lowercased, and
// stripped to [a-z0-9-_].
func GenerateUsername(email, phone string) string {
	base := phone
	if email != "" {
		base = strings.Split(email, "@")[0]
	}
	raw := strings.ToLower(base + "-" + RandomString(5))
	return usernameDisallowed.ReplaceAllString(raw, "")
}

// AuthService reconciles verified external identities with local accounts.
type AuthService struct {
	db       *gorm.DB
	verifier IdentityVerifier
	invites  *InviteService
}

func NewAuthService(db *gorm.DB, verifier IdentityVerifier, invites *InviteService) *AuthService {
	return &AuthService{db: db, verifier: verifier, invites: invites}
}

// providerLink is a classified provider descriptor waiting to become an
// AccountProvider row.
type providerLink struct {
	provider string
	uid      string
	extra    map[string]any
}

// FirebaseSignIn runs the full reconciliation flow as one transaction:
// verify the assertion, match or create the local account, record provider
// links, sweep pending invitations, and summarize the account's vendor
// portal access. Nothing is persisted when any step fails.
func (s *AuthService) FirebaseSignIn(ctx context.Context, req *dto.FirebaseSignInRequest) (*dto.FirebaseAuthResponse, error) {
	assertion, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		slog.Error("identity verification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if assertion.Email == "" && assertion.PhoneNumber == "" {
		return nil, ErrInvalidCredentials
	}
	if assertion.Email != "" && !assertion.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	links, usesPassword, err := classifyProviders(assertion)
	if err != nil {
		return nil, err
	}

	firstName := req.FirstName
	if firstName == "" {
		firstName = assertion.DisplayName
	}

	var resp *dto.FirebaseAuthResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, newUser, err := s.findOrCreateAccount(tx, assertion, req, links, usesPassword, firstName)
		if err != nil {
			return err
		}

		if account.Email != nil {
			if err := s.invites.AcceptPendingForAccount(tx, account); err != nil {
				return err
			}
		}

		portal, err := buildPortalAccounts(tx, account.ID)
		if err != nil {
			return err
		}

		resp = &dto.FirebaseAuthResponse{
			ID:                   account.ID,
			Username:             account.Username,
			Email:                account.Email,
			Phone:                account.PhoneNumber,
			FirstName:            account.FirstName,
			LastName:             account.LastName,
			EmailVerified:        account.EmailVerified,
			PhoneVerified:        account.PhoneVerified,
			NewUser:              newUser,
			VendorPortalAccounts: portal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// classifyProviders maps raw provider descriptors into the closed provider
// set. The native firebase link always comes first; an unrecognized
// descriptor fails the whole flow rather than being silently dropped.
func classifyProviders(assertion *IdentityAssertion) ([]providerLink, bool, error) {
	links := []providerLink{{
		provider: models.ProviderFirebase,
		uid:      assertion.SubjectID,
		extra: map[string]any{
			"photo_url":    assertion.PhotoURL,
			"email":        assertion.Email,
			"display_name": assertion.DisplayName,
		},
	}}

	usesPassword := false
	for _, p := range assertion.Providers {
		switch p.ProviderID {
		case rawProviderGoogle, rawProviderApple:
			provider := models.ProviderGoogle
			if p.ProviderID == rawProviderApple {
				provider = models.ProviderApple
			}
			links = append(links, providerLink{
				provider: provider,
				uid:      p.SubjectID,
				extra: map[string]any{
					"photo_url":    p.PhotoURL,
					"email":        p.Email,
					"display_name": p.DisplayName,
					"firebase_uid": assertion.SubjectID,
				},
			})
		case rawProviderPassword:
			usesPassword = true
		case rawProviderPhone, rawProviderFirebase:
			// firebase-native sign-in, already covered by the native link
		default:
			return nil, false, fmt.Errorf("%w: %s", ErrUnsupportedProvider, p.ProviderID)
		}
	}
	return links, usesPassword, nil
}

func (s *AuthService) findOrCreateAccount(
	tx *gorm.DB,
	assertion *IdentityAssertion,
	req *dto.FirebaseSignInRequest,
	links []providerLink,
	usesPassword bool,
	firstName string,
) (*models.Account, bool, error) {
	account, err := lookupAccount(tx, assertion.Email, assertion.PhoneNumber)
	if err != nil {
		return nil, false, err
	}
	if account != nil {
		return account, false, nil
	}

	// New email/password users must supply a password we can store locally.
	if usesPassword {
		if req.Password == "" {
			return nil, false, ErrPasswordRequired
		}
		if utf8.RuneCountInString(req.Password) < minPasswordLength {
			return nil, false, ErrPasswordTooShort
		}
	}

	authProvider := models.ProviderEmail
	for _, l := range links {
		if l.provider != models.ProviderFirebase {
			authProvider = l.provider
			break
		}
	}

	created := models.Account{
		ID:            uuid.New(),
		FirstName:     firstName,
		Username:      GenerateUsername(assertion.Email, assertion.PhoneNumber),
		EmailVerified: assertion.EmailVerified,
		PhoneVerified: assertion.PhoneNumber != "",
		AuthProvider:  authProvider,
		IsActive:      true,
	}
	if assertion.Email != "" {
		created.Email = &assertion.Email
	}
	if assertion.PhoneNumber != "" {
		created.PhoneNumber = &assertion.PhoneNumber
	}
	if req.MiddleName != "" {
		created.MiddleName = &req.MiddleName
	}
	if req.LastName != "" {
		created.LastName = &req.LastName
	}
	if usesPassword && authProvider == models.ProviderEmail {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hash)
		created.Password = &h
	}

	if err := createInSavepoint(tx, &created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race: whoever won also wrote the provider
			// links, so fall back to the lookup.
			existing, lookupErr := lookupAccount(tx, assertion.Email, assertion.PhoneNumber)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create account: %w", err)
	}

	for _, l := range links {
		extra, err := json.Marshal(l.extra)
		if err != nil {
			return nil, false, fmt.Errorf("failed to encode provider data: %w", err)
		}
		row := models.AccountProvider{
			ID:          uuid.New(),
			AccountID:   created.ID,
			Provider:    l.provider,
			ProviderUID: l.uid,
			ExtraData:   datatypes.JSON(extra),
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, false, fmt.Errorf("failed to record provider link: %w", err)
		}
	}

	slog.Info("account created from external identity",
		"account_id", created.ID.String(), "provider", authProvider)
	return &created, true, nil
}

func lookupAccount(tx *gorm.DB, email, phone string) (*models.Account, error) {
	q := tx
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone_number = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = q.Where("phone_number = ?", phone)
	}

	var account models.Account
	if err := q.First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return &account, nil
}

// buildPortalAccounts collects every vendor the account administers and
// every branch it can reach, directly or through a vendor-level super-admin
// membership, grouped by vendor.
func buildPortalAccounts(tx *gorm.DB, accountID uuid.UUID) ([]dto.VendorPortalAccount, error) {
	var vendorMembers []models.VendorMember
	if err := tx.Preload("Vendor").Preload("Vendor.Branches").Preload("Vendor.Branches.District").
		Where("account_id = ?", accountID).
		Find(&vendorMembers).Error; err != nil {
		return nil, fmt.Errorf("failed to load vendor memberships: %w", err)
	}

	var branchMembers []models.VendorBranchMember
	if err := tx.Preload("VendorBranch").Preload("VendorBranch.Vendor").Preload("VendorBranch.District").
		Where("account_id = ?", accountID).
		Find(&branchMembers).Error; err != nil {
		return nil, fmt.Errorf("failed to load branch memberships: %w", err)
	}

	accounts := make(map[uuid.UUID]*dto.VendorPortalAccount)
	seenBranches := make(map[uuid.UUID]bool)

	for i := range vendorMembers {
		m := &vendorMembers[i]
		if m.Vendor == nil {
			continue
		}
		memberID := m.ID
		entry := &dto.VendorPortalAccount{
			DisplayName:            m.Vendor.Name,
			VendorID:               m.VendorID,
			VendorMemberID:         &memberID,
			IsSuperAdmin:           m.IsSuperAdmin,
			HasVendorAccountAccess: true,
			Branches:               []dto.VendorPortalBranch{},
		}
		accounts[m.VendorID] = entry
	}

	for i := range branchMembers {
		m := &branchMembers[i]
		branch := m.VendorBranch
		if branch == nil || branch.Vendor == nil {
			continue
		}
		entry, ok := accounts[branch.VendorID]
		if !ok {
			entry = &dto.VendorPortalAccount{
				DisplayName:            branch.Vendor.Name,
				VendorID:               branch.VendorID,
				HasVendorAccountAccess: false,
				Branches:               []dto.VendorPortalBranch{},
			}
			accounts[branch.VendorID] = entry
		}
		memberID := m.ID
		entry.Branches = append(entry.Branches, dto.VendorPortalBranch{
			DisplayName:          branchDisplayName(branch.Vendor.Name, branch),
			VendorBranchID:       branch.ID,
			VendorBranchMemberID: &memberID,
			IsSuperAdmin:         m.IsSuperAdmin,
		})
		seenBranches[branch.ID] = true
	}

	// Vendor-level super admins reach every child branch without a branch row.
	for i := range vendorMembers {
		m := &vendorMembers[i]
		if m.Vendor == nil || !m.IsSuperAdmin {
			continue
		}
		entry := accounts[m.VendorID]
		for j := range m.Vendor.Branches {
			b := &m.Vendor.Branches[j]
			if seenBranches[b.ID] {
				continue
			}
			entry.Branches = append(entry.Branches, dto.VendorPortalBranch{
				DisplayName:    branchDisplayName(m.Vendor.Name, b),
				VendorBranchID: b.ID,
				IsSuperAdmin:   true,
			})
			seenBranches[b.ID] = true
		}
	}

	out := make([]dto.VendorPortalAccount, 0, len(accounts))
	for _, entry := range accounts {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func branchDisplayName(vendorName string, b *models.VendorBranch) string {
	name := fmt.Sprintf("%s (%s)", vendorName, b.Code)
	if b.District != nil {
		name = fmt.Sprintf("%s (%s)", name, b.District.Name)
	}
	return name
}
