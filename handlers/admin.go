// File: handlers/admin.go
package handlers

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// AdminHandler exposes identity-provider administration: listing accounts
// and assigning role claims.
type AdminHandler struct {
	Auth   *auth.Client
	Logger *zap.Logger
}

type accountView struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Disabled bool   `json:"disabled"`
	Admin    bool   `json:"admin"`
	Mechanic bool   `json:"mechanic"`
}

// ListAccounts handles GET /api/admin/accounts.
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	var accounts []accountView
	iter := h.Auth.Users(c.Request.Context(), "")
	for {
		rec, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			h.Logger.Error("failed to iterate identity accounts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounts"})
			return
		}
		view := accountView{
			UID:      rec.UID,
			Email:    rec.Email,
			Name:     rec.DisplayName,
			Disabled: rec.Disabled,
		}
		if rec.CustomClaims != nil {
			view.Admin, _ = rec.CustomClaims["admin"].(bool)
			view.Mechanic, _ = rec.CustomClaims["mechanic"].(bool)
		}
		accounts = append(accounts, view)
	}
	c.JSON(http.StatusOK, accounts)
}

// SetClaims handles PUT /api/admin/accounts/:uid/claims. Claims take effect
// on the account's next token refresh.
func (h *AdminHandler) SetClaims(c *gin.Context) {
	var input struct {
		Admin    bool `json:"admin"`
		Mechanic bool `json:"mechanic"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	uid := c.Param("uid")
	claims := map[string]interface{}{
		"admin":    input.Admin,
		"mechanic": input.Mechanic,
	}
	if err := h.Auth.SetCustomUserClaims(c.Request.Context(), uid, claims); err != nil {
		h.Logger.Error("failed to set custom claims", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set claims"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "uid": uid, "claims": claims})
}

// DisableAccount handles POST /api/admin/accounts/:uid/disable.
func (h *AdminHandler) DisableAccount(c *gin.Context) {
	uid := c.Param("uid")
	update := (&auth.UserToUpdate{}).Disabled(true)
	if _, err := h.Auth.UpdateUser(c.Request.Context(), uid, update); err != nil {
		h.Logger.Error("failed to disable account", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disable account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "disabled", "uid": uid})
}
