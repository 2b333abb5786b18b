package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/saturnines/project-gateway/pkg/config"
	"github.com/saturnines/project-gateway/pkg/gateway"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to environment variables)")
	category := flag.String("category", "", "project category to list")
	email := flag.String("email", "", "look up this user and their latest projects")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	var (
		cfg *config.Gateway
		err error
	)
	if *configPath != "" {
		cfg, err = config.DefaultLoader().Load(*configPath)
	} else {
		cfg, err = config.DefaultLoader().FromEnv()
	}
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	log.SetLevelFromString(cfg.Log.Level)

	gw, err := gateway.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("create gateway")
	}

	ctx := context.Background()

	projects, err := gw.ProjectPages(category).All(ctx)
	if err != nil {
		log.WithError(err).Fatal("list projects")
	}
	fmt.Printf("Found %d projects in %q\n", len(projects), *category)
	for _, p := range projects {
		author := "unknown"
		if p.CreatedBy != nil {
			author = p.CreatedBy.Name
		}
		fmt.Printf("  %s  %s by %s\n", p.ID, p.Title, author)
	}

	if *email == "" {
		return
	}

	user, err := gw.GetUser(ctx, *email)
	if err != nil {
		log.WithError(err).Fatal("get user")
	}
	if user == nil {
		fmt.Printf("No user with email %s\n", *email)
		os.Exit(1)
	}

	withProjects, err := gw.GetUserProjects(ctx, user.ID, nil)
	if err != nil {
		log.WithError(err).Fatal("get user projects")
	}
	fmt.Printf("%s (%s)\n", withProjects.Name, withProjects.Email)
	if withProjects.Projects != nil {
		for _, p := range withProjects.Projects.Projects() {
			fmt.Printf("  %s  %s\n", p.ID, p.Title)
		}
	}
}
