package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/tasktag-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasktag-api/internal/api/middleware"
)

// routes builds the application router.
//
// CORS runs before routing so preflight requests never reach a handler and
// every response, including 404 and 405, carries the allow headers.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS)
	r.Use(apiMiddleware.Trace(app.logger))

	tasks := api.NewTaskHandler(app.taskService)

	r.Get("/health", tasks.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.NotFound(api.NotFound)
		r.MethodNotAllowed(api.MethodNotAllowed)

		r.Get("/tasks", tasks.ListTasks)
		r.Post("/tasks", tasks.CreateTask)
		r.Put("/tasks", tasks.UpdateTask)
		r.Delete("/tasks", tasks.DeleteTask)
	})

	// Everything outside the API is the client bundle.
	r.MethodNotAllowed(api.MethodNotAllowed)
	r.NotFound(api.NewSPAHandler(os.DirFS(app.config.Server.StaticDir)).ServeHTTP)

	return r
}
