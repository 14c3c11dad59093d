package httpserver

import (
	"errors"
	"net/http"

	authsvc "storefront/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
			return
		}

		u, err := svc.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, authsvc.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"msg": "email and password required"})
			case errors.Is(err, authsvc.ErrAlreadyRegistered):
				c.JSON(http.StatusConflict, gin.H{"msg": "email already registered"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "user could not register"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"msg": "user registered", "user": u})
	}
}

func loginHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
			return
		}

		token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, authsvc.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"msg": "email and password required"})
			case errors.Is(err, authsvc.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid email or password"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "user could not login"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"msg": "user loggedin", "token": token})
	}
}
