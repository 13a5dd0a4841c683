package store

import "github.com/nhle/techtrack/internal/model"

// DefaultCatalogue returns the starter technologies seeded on first
// run, when the storage slot is still empty.
func DefaultCatalogue() []model.Technology {
	return []model.Technology{
		{
			ID:          1,
			Title:       "React Components",
			Description: "Functional components, JSX, and props",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryFrontend,
		},
		{
			ID:          2,
			Title:       "Node.js Basics",
			Description: "Server-side JavaScript and filesystem APIs",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryBackend,
		},
		{
			ID:          3,
			Title:       "HTML & CSS",
			Description: "Semantic markup, Flexbox, Grid, and responsive design",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryFrontend,
		},
		{
			ID:          4,
			Title:       "Express.js",
			Description: "REST APIs and middleware in Node.js",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryBackend,
		},
		{
			ID:          5,
			Title:       "React Hooks",
			Description: "useState, useEffect, useContext, and custom hooks",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryFrontend,
		},
		{
			ID:          6,
			Title:       "MongoDB",
			Description: "NoSQL document storage and the Mongoose ODM",
			Status:      model.StatusNotStarted,
			Category:    model.CategoryBackend,
		},
	}
}
