package service

import "github.com/maheshrc27/contentflow/internal/models"

// DefaultTemplates is the built-in catalog. {niche} and {audience} are expanded per project.
var DefaultTemplates = []models.Template{
	{
		ID:          "product-launch",
		Name:        "Product Launch Week",
		Platform:    models.PlatformLinkedIn,
		ContentType: "Post",
		Topics: []string{
			"Something new is coming to {niche}",
			"The problem {audience} told us about",
			"Behind the build: how we made it",
			"Launch day: what's live today",
		},
	},
	{
		ID:          "thought-leadership",
		Name:        "Thought Leadership",
		Platform:    models.PlatformLinkedIn,
		ContentType: "Article",
		Topics: []string{
			"3 myths about {niche} that hold teams back",
			"Where {niche} is heading this year",
			"What {audience} get wrong about getting started",
		},
	},
	{
		ID:          "weekly-tips",
		Name:        "Weekly Quick Tips",
		Platform:    models.PlatformInstagram,
		ContentType: "Reel",
		Topics: []string{
			"60-second {niche} hack",
			"One tool every {audience} should try",
			"Before vs after: a {niche} makeover",
			"Weekend poll: your biggest {niche} challenge",
			"Myth or fact: {niche} edition",
		},
	},
	{
		ID:          "blog-series",
		Name:        "Beginner Blog Series",
		Platform:    models.PlatformBlog,
		ContentType: "How-To",
		Topics: []string{
			"Getting started with {niche}: step by step",
			"The complete {niche} playbook for {audience}",
			"Top 10 {niche} trends to watch",
		},
	},
	{
		ID:          "thread-series",
		Name:        "Twitter Thread Series",
		Platform:    models.PlatformTwitter,
		ContentType: "Thread",
		Topics: []string{
			"The ultimate guide to {niche} for beginners",
			"Case study: a {niche} turnaround",
			"Lessons {audience} taught us this month",
		},
	},
}
