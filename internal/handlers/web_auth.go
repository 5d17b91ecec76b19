package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// Home sends visitors to the dashboard.
func (h *WebHandler) Home(c *gin.Context) {
	redirect(c, "/dashboard")
}

// LoginPage shows the login form
func (h *WebHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.GetCurrentUser(c); ok {
		redirect(c, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", "auth.login_title", gin.H{
		"Next": c.Query("next"),
	})
}

// Login checks the submitted credentials and starts a session
func (h *WebHandler) Login(c *gin.Context) {
	next := safeLocalURL(c.Query("next"), c.Request.Host, "/dashboard")

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		h.flashError(c, err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.render(c, http.StatusUnauthorized, "login.html", "auth.login_title", gin.H{
				"Next": c.Query("next"),
			})
			return
		}
		redirect(c, "/login")
		return
	}

	if err := startSession(c, user.ID); err != nil {
		log.Printf("[%s] Failed to save session: %v", middleware.GetRequestID(c), err)
		h.flash(c, "error.internal")
		redirect(c, "/login")
		return
	}

	redirect(c, next)
}

// TooManyAttempts answers a rate-limited login form.
func (h *WebHandler) TooManyAttempts(c *gin.Context) {
	h.flash(c, "auth.too_many_attempts")
	h.render(c, http.StatusTooManyRequests, "login.html", "auth.login_title", gin.H{
		"Next": c.Query("next"),
	})
}

// RegisterPage shows the registration form
func (h *WebHandler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.GetCurrentUser(c); ok {
		redirect(c, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "register.html", "auth.register_title", nil)
}

// Register creates an account with the default role
func (h *WebHandler) Register(c *gin.Context) {
	username, email, password := c.PostForm("username"), c.PostForm("email"), c.PostForm("password")
	if username == "" || email == "" || password == "" {
		h.flash(c, "auth.required_fields")
		redirect(c, "/register")
		return
	}

	_, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.flashError(c, err)
		redirect(c, "/register")
		return
	}

	h.flash(c, "auth.registered")
	redirect(c, "/login")
}

// Logout ends the session
func (h *WebHandler) Logout(c *gin.Context) {
	if err := endSession(c); err != nil {
		log.Printf("[%s] Failed to clear session: %v", middleware.GetRequestID(c), err)
	}
	redirect(c, "/login")
}
