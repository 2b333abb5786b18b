package gateway

// Creator is the user reference embedded in a project.
type Creator struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Project is a showcased project as returned by the API.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	LiveSiteURL string   `json:"liveSiteUrl,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	Category    string   `json:"category,omitempty"`
	CreatedBy   *Creator `json:"createdBy,omitempty"`
}

// User owns projects.
type User struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	AvatarURL   string             `json:"avatarUrl,omitempty"`
	Description string             `json:"description,omitempty"`
	GithubURL   string             `json:"githubUrl,omitempty"`
	LinkedinURL string             `json:"linkedinUrl,omitempty"`
	Projects    *ProjectConnection `json:"projects,omitempty"`
}

// PageInfo is the relay-style cursor block of a connection.
type PageInfo struct {
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

// ProjectEdge wraps one project in a connection.
type ProjectEdge struct {
	Node Project `json:"node"`
}

// ProjectConnection is one page of projects.
type ProjectConnection struct {
	PageInfo PageInfo      `json:"pageInfo"`
	Edges    []ProjectEdge `json:"edges"`
}

// Projects flattens the edges.
func (c *ProjectConnection) Projects() []Project {
	if c == nil {
		return nil
	}
	out := make([]Project, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

// ProjectForm is what a caller submits to create or update a project.
// Image is either an already hosted URL or an inline base64 data URL. Every
// field is transmitted, so an empty one is stored as "".
type ProjectForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LiveSiteURL string `json:"liveSiteUrl"`
	GithubURL   string `json:"githubUrl"`
	Category    string `json:"category"`
}
