package entities

import "time"

// Role drives both the authorization gate and the post-signature flow.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleClient   Role = "client"
	RoleProspect Role = "prospect"
)

// IsOperator reports whether the role may issue, resend or delete quotes.
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Account is the user record. Email is unique (guarded by the account_emails table).
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile carries the contact details resolved when issuing a quote.
type Profile struct {
	AccountID string    `json:"account_id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential stores the password hash only.
type Credential struct {
	AccountID    string    `json:"account_id"`
	PasswordHash string    `json:"-"`
	MustChange   bool      `json:"must_change"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	AccountID string
	Role      Role
}

// OneTimePassword holds a freshly generated plaintext password until it is
// revealed once. It prints as [REDACTED] in any formatted output.
type OneTimePassword struct {
	value *string
}

func NewOneTimePassword(plain string) *OneTimePassword {
	return &OneTimePassword{value: &plain}
}

// Reveal returns the plaintext and forgets it; later calls return "".
func (p *OneTimePassword) Reveal() string {
	if p == nil || p.value == nil {
		return ""
	}
	v := *p.value
	p.value = nil
	return v
}

func (p *OneTimePassword) String() string   { return "[REDACTED]" }
func (p *OneTimePassword) GoString() string { return "[REDACTED]" }

// ProvisionedAccount is returned by the shadow account provisioner. Password is
// nil when an existing account was reused.
type ProvisionedAccount struct {
	AccountID string
	Created   bool
	Password  *OneTimePassword
}
