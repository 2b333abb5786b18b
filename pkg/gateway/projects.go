package gateway

import (
	"context"
	"encoding/json"

	"github.com/saturnines/project-gateway/pkg/errors"
	"github.com/saturnines/project-gateway/pkg/transport/graphql"
)

// FetchAllProjects returns one page of projects. A nil category matches the
// empty category; a nil endCursor starts from the first page.
func (g *Gateway) FetchAllProjects(ctx context.Context, category, endCursor *string) (*ProjectConnection, error) {
	var data struct {
		ProjectSearch ProjectConnection `json:"projectSearch"`
	}
	err := g.send(ctx, g.ops.projects, newProjectsPayload(category, endCursor), g.apiKeyAuth(), &data)
	if err != nil {
		return nil, err
	}
	return &data.ProjectSearch, nil
}

// CreateNewProject uploads form.Image and, only once the upload produced a URL,
// creates the project linked to creatorID on behalf of token.
func (g *Gateway) CreateNewProject(ctx context.Context, form ProjectForm, creatorID, token string) (*Project, error) {
	const op = "CreateProject"

	p := createProjectPayload{
		Title:       form.Title,
		Description: form.Description,
		Image:       form.Image,
		LiveSiteURL: form.LiveSiteURL,
		GithubURL:   form.GithubURL,
		Category:    form.Category,
		CreatorID:   creatorID,
	}
	// nothing is uploaded for a request that would be rejected anyway
	if err := validate.Struct(p); err != nil {
		return nil, errors.WrapError(validationError(err), errors.ErrValidation, op)
	}
	if token == "" {
		return nil, errors.WrapError(errTokenRequired, errors.ErrValidation, op)
	}

	url, err := g.upload(ctx, form.Image, op)
	if err != nil {
		return nil, err
	}
	p.Image = url

	var data struct {
		ProjectCreate struct {
			Project Project `json:"project"`
		} `json:"projectCreate"`
	}
	if err := g.send(ctx, g.ops.createProject, p, bearerAuth(token), &data); err != nil {
		return nil, err
	}
	return &data.ProjectCreate.Project, nil
}

// UpdateProject replaces the fields of projectID with form on behalf of token.
// An inline base64 image is uploaded first and replaced by its hosted URL; any
// other image value is sent as given.
func (g *Gateway) UpdateProject(ctx context.Context, form ProjectForm, projectID, token string) (*Project, error) {
	const op = "UpdateProject"

	p := updateProjectPayload{ID: projectID, Form: form}
	if err := validate.Struct(p); err != nil {
		return nil, errors.WrapError(validationError(err), errors.ErrValidation, op)
	}
	if token == "" {
		return nil, errors.WrapError(errTokenRequired, errors.ErrValidation, op)
	}

	if IsBase64Image(form.Image) {
		url, err := g.upload(ctx, form.Image, op)
		if err != nil {
			return nil, err
		}
		p.Form.Image = url
	}

	var data struct {
		ProjectUpdate struct {
			Project Project `json:"project"`
		} `json:"projectUpdate"`
	}
	if err := g.send(ctx, g.ops.updateProject, p, bearerAuth(token), &data); err != nil {
		return nil, err
	}
	return &data.ProjectUpdate.Project, nil
}

// DeleteProject deletes id on behalf of token and returns the deleted id.
func (g *Gateway) DeleteProject(ctx context.Context, id, token string) (string, error) {
	var data struct {
		ProjectDelete struct {
			DeletedID string `json:"deletedId"`
		} `json:"projectDelete"`
	}
	if token == "" {
		return "", errors.WrapError(errTokenRequired, errors.ErrValidation, g.ops.deleteProject.Name)
	}
	if err := g.send(ctx, g.ops.deleteProject, projectIDPayload{ID: id}, bearerAuth(token), &data); err != nil {
		return "", err
	}
	return data.ProjectDelete.DeletedID, nil
}

// GetProjectDetails returns the project, or nil when the API knows no such id.
func (g *Gateway) GetProjectDetails(ctx context.Context, id string) (*Project, error) {
	var data struct {
		Project *Project `json:"project"`
	}
	if err := g.send(ctx, g.ops.projectByID, projectIDPayload{ID: id}, g.apiKeyAuth(), &data); err != nil {
		return nil, err
	}
	return data.Project, nil
}

// ProjectIterator walks every page of FetchAllProjects for one category.
type ProjectIterator struct {
	g     *Gateway
	pager *graphql.Pager
	err   error
}

// ProjectPages returns an iterator over all project pages in category.
func (g *Gateway) ProjectPages(category *string) *ProjectIterator {
	it := &ProjectIterator{g: g}

	b, err := g.builder(g.ops.projects, newProjectsPayload(category, nil), g.apiKeyAuth())
	if err != nil {
		it.err = err
		return it
	}

	it.pager, it.err = graphql.NewPager(b, "endcursor",
		[]string{"projectSearch", "pageInfo", "endCursor"},
		[]string{"projectSearch", "pageInfo", "hasNextPage"},
	)
	return it
}

// Next fetches the next page. It returns (nil, nil) once every page was read.
func (it *ProjectIterator) Next(ctx context.Context) (*ProjectConnection, error) {
	if it.err != nil {
		return nil, it.err
	}

	b := it.pager.NextBuilder()
	if b == nil {
		return nil, nil
	}

	var raw json.RawMessage
	if err := it.g.execute(ctx, b, &raw); err != nil {
		return nil, err
	}
	if err := it.pager.UpdateState(raw); err != nil {
		return nil, err
	}

	var data struct {
		ProjectSearch ProjectConnection `json:"projectSearch"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "decode project page")
	}
	return &data.ProjectSearch, nil
}

// HasMore reports whether Next may still return a page.
func (it *ProjectIterator) HasMore() bool {
	return it.err == nil && it.pager.HasMore()
}

// All drains the iterator.
func (it *ProjectIterator) All(ctx context.Context) ([]Project, error) {
	if it.err != nil {
		return nil, it.err
	}

	var all []Project
	for it.HasMore() {
		page, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		all = append(all, page.Projects()...)
	}
	return all, nil
}
