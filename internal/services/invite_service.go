package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateInvite     = errors.New("a pending invitation already exists for this email")
	ErrInvalidInviteState  = errors.New("invitation is no longer pending")
	ErrInvalidInviteTarget = errors.New("invitation must target exactly one of vendor or vendor branch")
	ErrInviteNotFound      = errors.New("invitation not found")
)

const inviteTokenLength = 32

// InviteTarget selects the scope an invitation binds to. Exactly one field
// must be set.
type InviteTarget struct {
	VendorID       *uuid.UUID
	VendorBranchID *uuid.UUID
}

func (t InviteTarget) valid() bool {
	return (t.VendorID != nil) != (t.VendorBranchID != nil)
}

// InviteService drives the pending -> accepted | declined invitation state
// machine. Acceptance and membership creation always commit together.
type InviteService struct {
	db *gorm.DB
}

func NewInviteService(db *gorm.DB) *InviteService {
	return &InviteService{db: db}
}

// Create records an invitation for email at the target scope. When an
// account with that email already exists the invitation resolves
// immediately: accepted with a fresh membership, or declined when the
// account is already a member.
func (s *InviteService) Create(ctx context.Context, email string, target InviteTarget, inviter *models.Account) (*models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	if !target.valid() {
		return nil, ErrInvalidInviteTarget
	}

	var inv models.Invitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dupQuery := tx.Model(&models.Invitation{}).
			Where("email = ? AND status = ?", email, models.InviteStatusPending)
		if target.VendorID != nil {
			dupQuery = dupQuery.Where("vendor_id = ?", *target.VendorID)
		} else {
			dupQuery = dupQuery.Where("vendor_branch_id = ?", *target.VendorBranchID)
		}
		var count int64
		if err := dupQuery.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check pending invitations: %w", err)
		}
		if count > 0 {
			return ErrDuplicateInvite
		}

		inv = models.Invitation{
			ID:             uuid.New(),
			Email:          email,
			VendorID:       target.VendorID,
			VendorBranchID: target.VendorBranchID,
			InvitedByID:    inviter.ID,
			Status:         models.InviteStatusPending,
			Token:          RandomString(inviteTokenLength),
		}
		if err := tx.Create(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The partial unique indexes on (email, target, status)
				// close the race the count check leaves open.
				return ErrDuplicateInvite
			}
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		var account models.Account
		err := tx.Where("email = ?", email).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // stays pending until the invitee shows up
		}
		if err != nil {
			return fmt.Errorf("account lookup failed: %w", err)
		}
		return s.accept(tx, &inv, &account)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AcceptPendingForAccount sweeps every pending invitation addressed to the
// account's email. Called inside the reconciliation transaction right after
// an account is matched or created.
func (s *InviteService) AcceptPendingForAccount(tx *gorm.DB, account *models.Account) error {
	if account.Email == nil {
		return nil
	}
	var pending []models.Invitation
	if err := tx.Where("email = ? AND status = ?", *account.Email, models.InviteStatusPending).
		Find(&pending).Error; err != nil {
		return fmt.Errorf("failed to load pending invitations: %w", err)
	}
	for i := range pending {
		if err := s.accept(tx, &pending[i], account); err != nil {
			return err
		}
	}
	return nil
}

// AcceptByToken resolves a single invitation for the calling account.
func (s *InviteService) AcceptByToken(ctx context.Context, token string, account *models.Account) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token = ?", token).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteNotFound
			}
			return fmt.Errorf("invitation lookup failed: %w", err)
		}
		return s.accept(tx, &inv, account)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeclineByToken rejects a pending invitation.
func (s *InviteService) DeclineByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token = ?", token).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteNotFound
			}
			return fmt.Errorf("invitation lookup failed: %w", err)
		}
		if !inv.Pending() {
			return ErrInvalidInviteState
		}
		inv.Status = models.InviteStatusDeclined
		return tx.Model(&inv).Select("status").Updates(map[string]any{
			"status": models.InviteStatusDeclined,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListForTarget returns all invitations for one scope, newest first.
func (s *InviteService) ListForTarget(ctx context.Context, target InviteTarget) ([]models.Invitation, error) {
	if !target.valid() {
		return nil, ErrInvalidInviteTarget
	}
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if target.VendorID != nil {
		q = q.Where("vendor_id = ?", *target.VendorID)
	} else {
		q = q.Where("vendor_branch_id = ?", *target.VendorBranchID)
	}
	var invites []models.Invitation
	if err := q.Find(&invites).Error; err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invites, nil
}

// accept transitions one invitation out of pending. An account that already
// holds the target membership resolves to declined instead of erroring: the
// invite's purpose is already satisfied. Membership creation and the status
// update commit atomically with the surrounding transaction.
func (s *InviteService) accept(tx *gorm.DB, inv *models.Invitation, account *models.Account) error {
	if !inv.Pending() {
		return ErrInvalidInviteState
	}

	var status string
	var err error
	if inv.VendorID != nil {
		status, err = s.joinVendor(tx, *inv.VendorID, account)
	} else {
		status, err = s.joinBranch(tx, *inv.VendorBranchID, account)
	}
	if err != nil {
		return err
	}

	inv.AccountID = &account.ID
	inv.Status = status
	if err := tx.Model(inv).Select("account_id", "status").Updates(map[string]any{
		"account_id": account.ID,
		"status":     status,
	}).Error; err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	slog.Info("invitation resolved",
		"invitation_id", inv.ID.String(), "status", status, "account_id", account.ID.String())
	return nil
}

func (s *InviteService) joinVendor(tx *gorm.DB, vendorID uuid.UUID, account *models.Account) (string, error) {
	var existing models.VendorMember
	err := tx.Where("account_id = ? AND vendor_id = ?", account.ID, vendorID).First(&existing).Error
	if err == nil {
		return models.InviteStatusDeclined, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("membership lookup failed: %w", err)
	}

	member := models.VendorMember{
		ID:        uuid.New(),
		AccountID: account.ID,
		VendorID:  vendorID,
	}
	if err := createInSavepoint(tx, &member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent acceptance won; treat as already a member.
			return models.InviteStatusDeclined, nil
		}
		return "", fmt.Errorf("failed to create vendor membership: %w", err)
	}
	return models.InviteStatusAccepted, nil
}

func (s *InviteService) joinBranch(tx *gorm.DB, branchID uuid.UUID, account *models.Account) (string, error) {
	var existing models.VendorBranchMember
	err := tx.Where("account_id = ? AND vendor_branch_id = ?", account.ID, branchID).First(&existing).Error
	if err == nil {
		return models.InviteStatusDeclined, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("membership lookup failed: %w", err)
	}

	member := models.VendorBranchMember{
		ID:             uuid.New(),
		AccountID:      account.ID,
		VendorBranchID: branchID,
	}
	if err := createInSavepoint(tx, &member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.InviteStatusDeclined, nil
		}
		return "", fmt.Errorf("failed to create branch membership: %w", err)
	}
	return models.InviteStatusAccepted, nil
}
