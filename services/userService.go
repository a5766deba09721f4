package services

import (
	"context"
	"errors"
	"strings"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = bcrypt.DefaultCost

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserService struct {
	*core
	tokens *helpers.TokenHelper
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(userPassword string, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)) == nil
}

// SignUp stores a new identity with a hashed password and issues its tokens.
func (s *UserService) SignUp(ctx context.Context, user models.User) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = "CUSTOMER"
	}
	if err := validate.Struct(&user); err != nil {
		return nil, validationf("%s", err.Error())
	}
	if _, err := s.store.Users.GetByEmail(ctx, user.Email); err == nil {
		return nil, conflict("email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, s.fail("could not check email", err)
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		return nil, s.fail("could not hash password", err)
	}
	now := s.now().UTC()
	user.Password = hashed
	user.Created_at, user.Updated_at = now, now
	if err := s.store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("email already exists")
		}
		return nil, s.fail("could not create user", err)
	}
	if err := s.issueTokens(ctx, &user); err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return nil, validationf("email and password are required")
	}
	user, err := s.store.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, validationf("email or password is incorrect")
	}
	if err != nil {
		return nil, s.fail("could not load user", err)
	}
	if !VerifyPassword(in.Password, user.Password) {
		return nil, validationf("email or password is incorrect")
	}
	if err := s.issueTokens(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, s.fail("could not load user", err)
	}
	user.Password = ""
	user.Token, user.Refresh_Token = "", ""
	return user, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) error {
	token, refreshToken, err := s.tokens.GenerateAllTokens(user.Email, user.Fullname, user.ID.Hex(), user.Role)
	if err != nil {
		return s.fail("could not issue tokens", err)
	}
	if err := s.store.Users.UpdateTokens(ctx, user.ID, token, refreshToken); err != nil {
		return s.fail("could not store tokens", err)
	}
	user.Token, user.Refresh_Token = token, refreshToken
	return nil
}
