package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solveza-payment-ledger/internal/api/service"
	"github.com/solveza-payment-ledger/internal/domain/shared"
	"github.com/solveza-payment-ledger/internal/domain/user"
)

// UserHandler handles HTTP requests for user, role and permission operations
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(logger *slog.Logger, userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Create registers a new user
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.userService.CreateUser(c.Request.Context(), user.Provider(req.Provider), req.ExternalID, req.Name, req.Email)
	if err != nil {
		h.logger.Error("Failed to create user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapUserToResponse(u))
}

// List retrieves all registered users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		RespondInternalError(c)
		return
	}

	response := UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		response.Users = append(response.Users, mapUserToResponse(u))
	}
	RespondOK(c, response)
}

// GetByID retrieves a user by its ID
func (h *UserHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseUserID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	u, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		var notFound user.ErrUserNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to get user", "user_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapUserToResponse(u))
}

// Delete removes a user
func (h *UserHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := shared.ParseUserID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		var notFound user.ErrUserNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to delete user", "user_id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// AssignRole assigns a role to a user
func (h *UserHandler) AssignRole(c *gin.Context) {
	idParam := c.Param("id")
	userID, err := shared.ParseUserID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	roleID, err := shared.ParseRoleID(req.RoleID)
	if err != nil {
		RespondBadRequest(c, "Invalid role ID")
		return
	}

	u, err := h.userService.AssignRole(c.Request.Context(), userID, roleID)
	if err != nil {
		var userNotFound user.ErrUserNotFound
		var roleNotFound user.ErrRoleNotFound
		switch {
		case errors.As(err, &userNotFound):
			RespondNotFound(c, "User not found")
		case errors.As(err, &roleNotFound):
			RespondNotFound(c, "Role not found")
		default:
			h.logger.Error("Failed to assign role", "user_id", idParam, "role_id", req.RoleID, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapUserToResponse(u))
}

// CreateRole creates a new role
func (h *UserHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	r, err := h.userService.CreateRole(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		var duplicate user.ErrDuplicateRole
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Role with this name already exists")
			return
		}
		h.logger.Error("Failed to create role", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapRoleToResponse(r))
}

// GrantPermission grants a permission to a role
func (h *UserHandler) GrantPermission(c *gin.Context) {
	idParam := c.Param("id")
	roleID, err := shared.ParseRoleID(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid role ID")
		return
	}

	var req GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	permissionID, err := shared.ParsePermissionID(req.PermissionID)
	if err != nil {
		RespondBadRequest(c, "Invalid permission ID")
		return
	}

	r, err := h.userService.GrantPermission(c.Request.Context(), roleID, permissionID)
	if err != nil {
		var roleNotFound user.ErrRoleNotFound
		var permNotFound user.ErrPermissionNotFound
		switch {
		case errors.As(err, &roleNotFound):
			RespondNotFound(c, "Role not found")
		case errors.As(err, &permNotFound):
			RespondNotFound(c, "Permission not found")
		default:
			h.logger.Error("Failed to grant permission", "role_id", idParam, "permission_id", req.PermissionID, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapRoleToResponse(r))
}

// CreatePermission creates a new permission
func (h *UserHandler) CreatePermission(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.userService.CreatePermission(c.Request.Context(), req.Name, req.Resource, req.Action)
	if err != nil {
		var duplicate user.ErrDuplicatePermission
		if errors.As(err, &duplicate) {
			RespondConflict(c, "Permission with this name already exists")
			return
		}
		h.logger.Error("Failed to create permission", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapPermissionToResponse(p))
}

// mapUserToResponse maps a user entity to a user response DTO
func mapUserToResponse(u *user.User) UserResponse {
	roleIDs := make([]string, 0, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		roleIDs = append(roleIDs, id.String())
	}
	return UserResponse{
		ID:         u.ID.String(),
		Provider:   string(u.Provider),
		ExternalID: u.ExternalID,
		Name:       u.Name,
		Email:      u.Email,
		RoleIDs:    roleIDs,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

// mapRoleToResponse maps a role entity to a role response DTO
func mapRoleToResponse(r *user.Role) RoleResponse {
	permissionIDs := make([]string, 0, len(r.PermissionIDs))
	for _, id := range r.PermissionIDs {
		permissionIDs = append(permissionIDs, id.String())
	}
	return RoleResponse{
		ID:            r.ID.String(),
		Name:          r.Name,
		Description:   r.Description,
		PermissionIDs: permissionIDs,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

// mapPermissionToResponse maps a permission entity to a response DTO
func mapPermissionToResponse(p *user.Permission) PermissionResponse {
	return PermissionResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Resource:  p.Resource,
		Action:    p.Action,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
