package gateway

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DefaultUserProjects is how many of a user's projects GetUserProjects returns
// when the caller does not say.
const DefaultUserProjects = 4

var base64Image = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

// IsBase64Image reports whether s is an inline data URL that still has to be
// uploaded before it can be stored on a project.
func IsBase64Image(s string) bool {
	return base64Image.MatchString(s)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// payload is the typed request behind one GraphQL operation.
type payload interface {
	Variables() map[string]interface{}
}

type projectsPayload struct {
	Category  string
	EndCursor *string
}

func newProjectsPayload(category, endCursor *string) projectsPayload {
	p := projectsPayload{EndCursor: endCursor}
	if category != nil {
		p.Category = *category
	}
	return p
}

func (p projectsPayload) Variables() map[string]interface{} {
	vars := map[string]interface{}{
		"category":  p.Category,
		"endcursor": nil,
	}
	if p.EndCursor != nil {
		vars["endcursor"] = *p.EndCursor
	}
	return vars
}

type projectIDPayload struct {
	ID string `validate:"required"`
}

func (p projectIDPayload) Variables() map[string]interface{} {
	return map[string]interface{}{"id": p.ID}
}

type createProjectPayload struct {
	Title       string `validate:"required"`
	Description string
	Image       string `validate:"required"`
	LiveSiteURL string `validate:"omitempty,url"`
	GithubURL   string `validate:"omitempty,url"`
	Category    string
	CreatorID   string `validate:"required"`
}

func (p createProjectPayload) Variables() map[string]interface{} {
	input := formInput(ProjectForm{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		LiveSiteURL: p.LiveSiteURL,
		GithubURL:   p.GithubURL,
		Category:    p.Category,
	})
	input["createdBy"] = map[string]interface{}{"link": p.CreatorID}
	return map[string]interface{}{"input": input}
}

type updateProjectPayload struct {
	ID   string `validate:"required"`
	Form ProjectForm
}

func (p updateProjectPayload) Variables() map[string]interface{} {
	return map[string]interface{}{
		"id":    p.ID,
		"input": formInput(p.Form),
	}
}

type createUserPayload struct {
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	AvatarURL string `validate:"omitempty,url"`
}

func (p createUserPayload) Variables() map[string]interface{} {
	input := map[string]interface{}{
		"name":  p.Name,
		"email": p.Email,
	}
	if p.AvatarURL != "" {
		input["avatarUrl"] = p.AvatarURL
	}
	return map[string]interface{}{"input": input}
}

type userPayload struct {
	Email string `validate:"required,email"`
}

func (p userPayload) Variables() map[string]interface{} {
	return map[string]interface{}{"email": p.Email}
}

type userProjectsPayload struct {
	ID   string `validate:"required"`
	Last int    `validate:"gte=1"`
}

func (p userProjectsPayload) Variables() map[string]interface{} {
	return map[string]interface{}{"id": p.ID, "last": p.Last}
}

// formInput renders every form field, empty ones included, so an empty
// category goes out as "" and an update can clear a field.
func formInput(f ProjectForm) map[string]interface{} {
	return map[string]interface{}{
		"title":       f.Title,
		"description": f.Description,
		"image":       f.Image,
		"liveSiteUrl": f.LiveSiteURL,
		"githubUrl":   f.GithubURL,
		"category":    f.Category,
	}
}
