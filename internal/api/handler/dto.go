package handler

// CreateAccountRequest represents a request to open a new account
type CreateAccountRequest struct {
	RequesterID string `json:"requester_id" binding:"required,uuid"`
	PayerID     string `json:"payer_id" binding:"required,uuid"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	PayerID     string `json:"payer_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// AccountListResponse represents a list of accounts in API responses
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// RecordTransactionRequest represents a request to record a deposit or a
// payment. Currency defaults to JPY when omitted.
type RecordTransactionRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
	Description string `json:"description" binding:"required"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ExecutedAt  string `json:"executed_at"`
	CreatedAt   string `json:"created_at"`
}

// TransactionListResponse represents a transaction history in API responses
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// BalanceResponse represents a derived account balance
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
}

// CreateUserRequest represents a request to register a new user
type CreateUserRequest struct {
	Provider   string `json:"provider" binding:"required,oneof=GOOGLE GITHUB MICROSOFT AUTH0"`
	ExternalID string `json:"external_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         string   `json:"id"`
	Provider   string   `json:"provider"`
	ExternalID string   `json:"external_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email,omitempty"`
	RoleIDs    []string `json:"role_ids"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// UserListResponse represents a list of users in API responses
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// AssignRoleRequest represents a request to assign a role to a user
type AssignRoleRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"`
}

// CreateRoleRequest represents a request to create a new role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// GrantPermissionRequest represents a request to grant a permission to a role
type GrantPermissionRequest struct {
	PermissionID string `json:"permission_id" binding:"required,uuid"`
}

// CreatePermissionRequest represents a request to create a new permission
type CreatePermissionRequest struct {
	Name     string `json:"name" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// PermissionResponse represents a permission in API responses
type PermissionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
