package repository

import "ecommerce-demo/internal/data/entity"

func newUser(username, email string) *entity.User {
	return &entity.User{
		Username: username,
		Email:    &email,
		Password: "hash",
	}
}
