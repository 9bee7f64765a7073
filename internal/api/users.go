package api

import (
	"context"
	"fmt"

	"bookcat/internal/domain"
)

// ListUsers fetches every user. The users endpoint is not paginated.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	env, err := c.do(ctx, c.routes.ListUsers, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	page, err := decodePage[domain.User](env)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return page.Items, nil
}

// GetUser fetches a single user
func (c *Client) GetUser(ctx context.Context, id int) (domain.User, error) {
	env, err := c.do(ctx, c.routes.GetUser(id), nil, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	var user domain.User
	if err := decodeRequired(env, &user); err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// CreateUser creates a user
func (c *Client) CreateUser(ctx context.Context, in domain.UserInput) (domain.User, error) {
	env, err := c.do(ctx, c.routes.CreateUser, nil, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	var user domain.User
	if err := decodeOptional(env, &user); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser updates a user. An empty password in the input keeps the stored one.
func (c *Client) UpdateUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error) {
	env, err := c.do(ctx, c.routes.UpdateUser(id), nil, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	var user domain.User
	if err := decodeOptional(env, &user); err != nil {
		return domain.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes a user
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	if _, err := c.do(ctx, c.routes.DeleteUser(id), nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
