package services

import (
	"context"
	"testing"

	"go-restaurant-booking/models"
)

func TestSignUpAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.svc.Users.SignUp(ctx, models.User{
		Fullname:    "Lan Vo",
		Email:       "Lan@Example.com",
		Password:    "secret1",
		PhoneNumber: "0900000000",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Token == "" || user.Password != "" || user.Role != "CUSTOMER" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = f.svc.Users.SignUp(ctx, models.User{Fullname: "Lan", Email: "lan@example.com", Password: "secret1", PhoneNumber: "1"})
	expectKind(t, err, KindConflict)

	_, err = f.svc.Users.Login(ctx, LoginInput{Email: "lan@example.com", Password: "wrong"})
	expectKind(t, err, KindValidation)

	logged, err := f.svc.Users.Login(ctx, LoginInput{Email: "lan@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := f.svc.Users.tokens.ValidateToken(logged.Token)
	if err != nil || claims.Uid != user.ID.Hex() {
		t.Fatalf("token: %+v %v", claims, err)
	}

	got, err := f.svc.Users.Get(ctx, user.ID.Hex())
	if err != nil || got.Email != "lan@example.com" || got.Token != "" {
		t.Fatalf("get: %+v %v", got, err)
	}
}
