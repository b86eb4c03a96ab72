package handler

import (
	"errors"
	"net/http"

	"github.com/atelierhq/internal/db"
	"github.com/atelierhq/internal/service"
	"github.com/atelierhq/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey = "user_id"
	adminUserCtx   = "__admin_user"

	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

// Login checks the submitted credentials and opens a session.
func (a *API) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := a.admins.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.Redirect(http.StatusFound, dashboardPath)
}

// Logout clears the session and any armed delete confirmation.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if subject, ok := session.Get(sessionUserKey).(string); ok {
		a.confirms.Reset(subject)
	}
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, loginPath)
}

// Signup registers an admin account. The first account ever created gets the
// admin role, later ones start as editors.
func (a *API) Signup(c *gin.Context) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &payload, "invalid signup payload") {
		return
	}

	user, err := a.admins.Signup(service.SignupInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// ShowLogin tells an unauthenticated client it may log in. Authenticated
// clients never reach this handler; RedirectIfAuthenticated sends them to
// the dashboard first.
func (a *API) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "login required"})
}

// ShowSignup reports whether the next signup will claim the admin role, so
// the form can explain what the account will become.
func (a *API) ShowSignup(c *gin.Context) {
	total, err := a.admins.Count()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"first_admin": total == 0})
}

// AdminRequired gates the admin routes. Requests without a session, and
// sessions whose subject has no admin_users row, are both redirected to the
// login page; valid admins get their row attached to the request context.
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		subject, _ := session.Get(sessionUserKey).(string)
		if subject == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		user, err := a.admins.GetByID(subject)
		if err != nil {
			// Authenticated but not an admin is treated the same as
			// unauthenticated at the gate.
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(adminUserCtx, user)
		c.Next()
	}
}

// RedirectIfAuthenticated keeps logged-in admins off the login and signup
// routes by sending them to the dashboard.
func (a *API) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if subject, ok := session.Get(sessionUserKey).(string); ok && subject != "" {
			if _, err := a.admins.GetByID(subject); err == nil {
				c.Redirect(http.StatusFound, dashboardPath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// CurrentAdmin returns the admin user the guard resolved for this request.
func CurrentAdmin(c *gin.Context) (*db.AdminUser, bool) {
	value, exists := c.Get(adminUserCtx)
	if !exists {
		return nil, false
	}
	user, ok := value.(*db.AdminUser)
	return user, ok
}

// ShowDashboard summarizes content counts and storage health for the admin
// landing view.
func (a *API) ShowDashboard(c *gin.Context) {
	user, _ := CurrentAdmin(c)

	var postCount, projectCount int64
	if err := a.db.Model(&db.Post{}).Count(&postCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := a.db.Model(&db.Project{}).Count(&projectCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	capability := a.media.Probe()
	storageInfo := gin.H{"available": capability.State == storage.Available}
	if capability.State != storage.Available {
		storageInfo["reason"] = capability.Reason
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"post_count":    postCount,
		"project_count": projectCount,
		"storage":       storageInfo,
	})
}
