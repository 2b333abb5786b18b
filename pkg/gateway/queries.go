package gateway

const projectsQuery = `
query getProjects($category: String, $endcursor: String) {
  projectSearch(first: 8, after: $endcursor, filter: {category: {eq: $category}}) {
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
    edges {
      node {
        title
        githubUrl
        description
        liveSiteUrl
        id
        image
        category
        createdBy {
          id
          email
          name
          avatarUrl
        }
      }
    }
  }
}`

const projectByIDQuery = `
query GetProjectById($id: ID!) {
  project(by: { id: $id }) {
    id
    title
    description
    image
    liveSiteUrl
    githubUrl
    category
    createdBy {
      id
      name
      email
      avatarUrl
    }
  }
}`

const createProjectMutation = `
mutation CreateProject($input: ProjectCreateInput!) {
  projectCreate(input: $input) {
    project {
      id
      title
      description
      image
      category
      createdBy {
        email
        name
      }
    }
  }
}`

const updateProjectMutation = `
mutation UpdateProject($id: ID!, $input: ProjectUpdateInput!) {
  projectUpdate(by: { id: $id }, input: $input) {
    project {
      id
      title
      description
      image
      category
      createdBy {
        email
        name
      }
    }
  }
}`

const deleteProjectMutation = `
mutation DeleteProject($id: ID!) {
  projectDelete(by: { id: $id }) {
    deletedId
  }
}`

const createUserMutation = `
mutation CreateUser($input: UserCreateInput!) {
  userCreate(input: $input) {
    user {
      id
      name
      email
      avatarUrl
      description
      githubUrl
      linkedinUrl
    }
  }
}`

const userQuery = `
query GetUser($email: String!) {
  user(by: { email: $email }) {
    id
    name
    email
    avatarUrl
    description
    githubUrl
    linkedinUrl
  }
}`

const userProjectsQuery = `
query getUserProjects($id: ID!, $last: Int = 4) {
  user(by: { id: $id }) {
    id
    name
    email
    description
    avatarUrl
    githubUrl
    linkedinUrl
    projects(last: $last) {
      edges {
        node {
          id
          title
          image
        }
      }
    }
  }
}`
