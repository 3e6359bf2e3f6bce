package models

import "time"

// User roles mirrored from the identity provider's custom claims.
const (
	RoleCustomer = "customer"
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

// Principal is the authenticated caller extracted by the auth middleware.
// Identity token verification itself is delegated to the provider SDK; the
// rest of the system trusts these fields.
type Principal struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Mechanic bool   `json:"mechanic"`
}

// CanActFor reports whether the principal may act on a record owned by the
// given customer email.
func (p *Principal) CanActFor(customerEmail string) bool {
	return p.Admin || p.Email == customerEmail
}

// User is the profile document backing a customer account.
type User struct {
	ID                string    `bson:"id" json:"id"` // identity provider UID
	Email             string    `bson:"email" json:"email"`
	Name              string    `bson:"name" json:"name"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address           string    `bson:"address,omitempty" json:"address,omitempty"`
	City              string    `bson:"city,omitempty" json:"city,omitempty"`
	State             string    `bson:"state,omitempty" json:"state,omitempty"`
	Zip               string    `bson:"zip,omitempty" json:"zip,omitempty"`
	Role              string    `bson:"role" json:"role"`
	CreatedByMechanic bool      `bson:"createdByMechanic,omitempty" json:"createdByMechanic,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserProfileUpdate is the self-service profile payload.
type UserProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Invitation statuses for mechanic-created customer accounts.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// CustomerInvitation records an account created on a customer's behalf. The
// temporary password is stored only as a bcrypt hash; the cleartext travels
// once through the notification queue.
type CustomerInvitation struct {
	ID            string    `bson:"id" json:"id"`
	CustomerID    string    `bson:"customerId" json:"customerId"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Status        string    `bson:"status" json:"status"`
	ExpiresAt     time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedBy     string    `bson:"createdBy" json:"createdBy"`
	SentAt        time.Time `bson:"sentAt" json:"sentAt"`
}

// CustomerCreateInput is the mechanic/admin-facing customer creation payload.
type CustomerCreateInput struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	SendInvitation bool   `json:"sendInvitation"`
	VehicleMake    string `json:"vehicleMake"`
	VehicleModel   string `json:"vehicleModel"`
	VehicleYear    int    `json:"vehicleYear"`
	VehicleVIN     string `json:"vehicleVin"`
}
