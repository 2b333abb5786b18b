package gateway

import "context"

// CreateUser registers a user with the API key credential.
func (g *Gateway) CreateUser(ctx context.Context, name, email, avatarURL string) (*User, error) {
	var data struct {
		UserCreate struct {
			User User `json:"user"`
		} `json:"userCreate"`
	}
	p := createUserPayload{Name: name, Email: email, AvatarURL: avatarURL}
	if err := g.send(ctx, g.ops.createUser, p, g.apiKeyAuth(), &data); err != nil {
		return nil, err
	}
	return &data.UserCreate.User, nil
}

// GetUser looks a user up by email. It returns nil when no user matches.
func (g *Gateway) GetUser(ctx context.Context, email string) (*User, error) {
	var data struct {
		User *User `json:"user"`
	}
	if err := g.send(ctx, g.ops.user, userPayload{Email: email}, g.apiKeyAuth(), &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// GetUserProjects returns the user with their last projects. A nil last means
// DefaultUserProjects.
func (g *Gateway) GetUserProjects(ctx context.Context, id string, last *int) (*User, error) {
	p := userProjectsPayload{ID: id, Last: DefaultUserProjects}
	if last != nil {
		p.Last = *last
	}

	var data struct {
		User *User `json:"user"`
	}
	if err := g.send(ctx, g.ops.userProjects, p, g.apiKeyAuth(), &data); err != nil {
		return nil, err
	}
	return data.User, nil
}
