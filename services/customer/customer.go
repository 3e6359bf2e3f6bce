// File: services/customer/customer.go
package customer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	userRepo "wrenchly/database/repository/user"
	"wrenchly/models"
	"wrenchly/services/notification"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invitationTTL = 7 * 24 * time.Hour

// CustomerService defines business logic for customer accounts. Mechanics
// can create accounts on a customer's behalf; the customer then receives a
// one-time temporary password by email.
type CustomerService interface {
	Create(ctx context.Context, p *models.Principal, in models.CustomerCreateInput) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, in models.UserProfileUpdate) (*models.User, error)
	// EnsureProfile backfills a profile document for an identity-provider
	// account that has none, e.g. a user who self-registered.
	EnsureProfile(ctx context.Context, p *models.Principal, name string) (*models.User, error)
}

// DefaultCustomerService is the production implementation.
type DefaultCustomerService struct {
	Repo     userRepo.UserRepository
	Auth     *auth.Client
	Notifier notification.Dispatcher
	Logger   *zap.Logger
}

// Create registers the customer with the identity provider, then writes the
// profile, an optional first vehicle, and the invitation record in one
// transaction. The cleartext temporary password travels only through the
// notification queue.
func (s *DefaultCustomerService) Create(ctx context.Context, p *models.Principal, in models.CustomerCreateInput) (*models.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("customer with email %s already exists", in.Email)
	}

	tempPassword, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	params := (&auth.UserToCreate{}).
		Email(in.Email).
		Password(tempPassword).
		DisplayName(in.Name)
	rec, err := s.Auth.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:                rec.UID,
		Email:             in.Email,
		Name:              in.Name,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		Zip:               in.Zip,
		Role:              models.RoleCustomer,
		CreatedByMechanic: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var v *models.Vehicle
	if in.VehicleMake != "" && in.VehicleModel != "" {
		v = &models.Vehicle{
			ID:        uuid.New().String(),
			UserID:    rec.UID,
			Make:      in.VehicleMake,
			Model:     in.VehicleModel,
			Year:      in.VehicleYear,
			VIN:       in.VehicleVIN,
			IsPrimary: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	var inv *models.CustomerInvitation
	if in.SendInvitation {
		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash temporary password: %w", err)
		}
		inv = &models.CustomerInvitation{
			ID:            uuid.New().String(),
			CustomerID:    rec.UID,
			CustomerEmail: in.Email,
			PasswordHash:  string(hash),
			Status:        models.InvitationPending,
			ExpiresAt:     now.Add(invitationTTL),
			CreatedBy:     p.Email,
			SentAt:        now,
		}
	}

	if err := s.Repo.CreateWithInvitation(ctx, u, inv, v); err != nil {
		// Roll back the identity account so a retry is clean.
		if delErr := s.Auth.DeleteUser(ctx, rec.UID); delErr != nil {
			s.Logger.Error("failed to roll back identity account",
				zap.String("uid", rec.UID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to persist customer: %w", err)
	}

	if inv != nil {
		go s.sendInvitation(u, tempPassword)
	}
	return u, nil
}

func (s *DefaultCustomerService) sendInvitation(u *models.User, tempPassword string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.Notifier.Dispatch(ctx, models.NotificationPayload{
		Kind:           models.NotifyCustomerInvitation,
		RecipientEmail: u.Email,
		RecipientName:  u.Name,
		TempPassword:   tempPassword,
	})
	if err != nil {
		s.Logger.Warn("invitation dispatch failed",
			zap.String("customer", u.ID), zap.Error(err))
	}
}

func (s *DefaultCustomerService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCustomerService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.GetByEmail(ctx, email)
}

func (s *DefaultCustomerService) UpdateProfile(ctx context.Context, id string, in models.UserProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Phone != "" {
		set["phone"] = in.Phone
	}
	if in.Address != "" {
		set["address"] = in.Address
	}
	if in.City != "" {
		set["city"] = in.City
	}
	if in.State != "" {
		set["state"] = in.State
	}
	if in.Zip != "" {
		set["zip"] = in.Zip
	}
	if len(set) == 0 {
		return s.Repo.GetByID(ctx, id)
	}
	if err := s.Repo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCustomerService) EnsureProfile(ctx context.Context, p *models.Principal, name string) (*models.User, error) {
	if existing, err := s.Repo.GetByID(ctx, p.UID); err == nil {
		return existing, nil
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:        p.UID,
		Email:     p.Email,
		Name:      name,
		Role:      models.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return u, nil
}

// generatePassword returns a 16-character URL-safe random credential.
func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
