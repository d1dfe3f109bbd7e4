package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests. Session handling
// proper is an external concern; this is the glue that gives the protected
// routes a caller identity.
type AuthHandler struct {
	userRepository      repositories.UserRepository
	jobSeekerRepository repositories.JobSeekerRepository
	firebaseAuth        *auth.Client
	jwtSecret           string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jobSeekerRepo repositories.JobSeekerRepository, firebaseAuthClient *auth.Client) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		userRepository:      userRepo,
		jobSeekerRepository: jobSeekerRepo,
		firebaseAuth:        firebaseAuthClient,
		jwtSecret:           jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/register/job-seeker", h.RegisterJobSeeker)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register handles local registration for an ordinary member
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A user with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return httpError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Headline: req.Headline,
		Category: req.Category,
		Location: req.Location,
		Company:  req.Company,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return httpError(err)
	}

	token, err := h.signToken(user, models.ActorKindMember)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// RegisterJobSeeker handles local registration for the job-seeker identity
// class: one user row plus the seeker extension row
func (h *AuthHandler) RegisterJobSeeker(c echo.Context) error {
	var req models.RegisterJobSeekerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A user with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return httpError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Headline: req.DesiredRole,
		Location: req.Location,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return httpError(err)
	}

	seeker := &models.JobSeeker{
		UserID:       user.ID,
		DesiredRole:  req.DesiredRole,
		Trades:       req.Trades,
		Availability: req.Availability,
	}
	if err := h.jobSeekerRepository.CreateJobSeeker(seeker); err != nil {
		return httpError(err)
	}

	token, err := h.signToken(user, models.ActorKindJobSeeker)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user, "job_seeker": seeker, "token": token})
}

// SignIn handles local email/password sign-in and issues a JWT
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return httpError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	kind := models.ActorKindMember
	if _, err := h.jobSeekerRepository.GetByUserID(user.ID); err == nil {
		kind = models.ActorKindJobSeeker
	}

	token, err := h.signToken(user, kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// FirebaseLogin verifies a Firebase ID token, upserts the matching user
// record and issues the same JWT the local paths use
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase authentication is not configured")
	}

	idToken, err := bearerFromHeader(c)
	if err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), idToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if errors.Is(err, repositories.ErrNotFound) {
		email, _ := token.Claims["email"].(string)
		name := req.Name
		if name == "" {
			name, _ = token.Claims["name"].(string)
		}
		user = &models.User{
			Name:        name,
			Email:       email,
			Category:    req.Category,
			FirebaseUID: token.UID,
		}
		if err := h.userRepository.CreateUser(user); err != nil {
			return httpError(err)
		}
	} else if err != nil {
		return httpError(err)
	}

	signed, err := h.signToken(user, models.ActorKindMember)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": signed})
}

func (h *AuthHandler) signToken(user *models.User, kind string) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func bearerFromHeader(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}
