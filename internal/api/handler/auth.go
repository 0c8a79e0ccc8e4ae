package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cleanspot/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerProfile struct {
	RollNumber   string   `json:"rollNumber"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phoneNumber"`
	AreaAssigned string   `json:"areaAssigned"`
	Skills       []string `json:"skills"`
}

type registerRequest struct {
	Username string           `json:"username"`
	Password string           `json:"password"`
	Role     string           `json:"role"`
	Profile  *registerProfile `json:"profile"`
}

func validateStudentProfile(p *registerProfile) string {
	if p == nil {
		return "Student profile data is required"
	}
	var missing []string
	if p.RollNumber == "" {
		missing = append(missing, "rollNumber")
	}
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return "Missing student profile fields: " + strings.Join(missing, ", ")
	}
	return ""
}

func validateEmployeeProfile(p *registerProfile) string {
	if p == nil {
		return "Employee profile data is required"
	}
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	if p.AreaAssigned == "" {
		missing = append(missing, "areaAssigned")
	}
	if len(missing) > 0 {
		return "Missing employee profile fields: " + strings.Join(missing, ", ")
	}
	return ""
}

// Register creates an account plus its role profile. The profile write is
// rolled back by deleting the fresh user row when it fails.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, password and role are required"})
		return
	}

	role := strings.ToLower(req.Role)
	if role != models.RoleStudent && role != models.RoleEmployee {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be either student or employee"})
		return
	}

	var validationError string
	if role == models.RoleStudent {
		validationError = validateStudentProfile(req.Profile)
	} else {
		validationError = validateEmployeeProfile(req.Profile)
	}
	if validationError != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationError})
		return
	}

	existing, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to register user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to register user"})
		return
	}

	user := &models.User{Username: req.Username, Password: string(hashed), Role: role}
	if err := h.Storage.CreateUser(user); err != nil {
		log.Printf("ERROR: Registration failed for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to register user"})
		return
	}

	if err := h.createProfile(user, role, req.Profile); err != nil {
		// Keep accounts and profiles consistent: drop the fresh user row.
		if delErr := h.Storage.DeleteUserByID(user.ID); delErr != nil {
			log.Printf("ERROR: Failed to roll back user %s: %v", user.ID, delErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Duplicate value for unique field"})
			return
		}
		log.Printf("ERROR: Registration failed for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to register user"})
		return
	}

	token, err := h.generateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

func (h *Handler) createProfile(user *models.User, role string, p *registerProfile) error {
	if role == models.RoleStudent {
		return h.Storage.CreateStudentProfile(&models.StudentProfile{
			UserID:     user.ID,
			RollNumber: p.RollNumber,
			Name:       p.Name,
			Email:      strings.ToLower(p.Email),
		})
	}
	return h.Storage.CreateEmployeeProfile(&models.EmployeeProfile{
		UserID:       user.ID,
		Name:         p.Name,
		PhoneNumber:  p.PhoneNumber,
		AreaAssigned: p.AreaAssigned,
		Skills:       p.Skills,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and issues a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	user, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to log in"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.generateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// generateJWT builds the bearer token carrying identity and role claims.
func (h *Handler) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(h.TokenTTL).Unix(),
		"iss":      "cleanspot-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// authIdentity is what a validated token asserts about the caller.
type authIdentity struct {
	UserID   string
	Username string
	Role     string
}

// validateToken parses and verifies a bearer token string.
func (h *Handler) validateToken(tokenString string) (*authIdentity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return nil, errors.New("token missing identity claims")
	}
	return &authIdentity{UserID: id, Username: username, Role: role}, nil
}
