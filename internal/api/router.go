package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/internal/session"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	pages *PageHandler,
	apiHandler *APIHandler,
	sessions *session.Manager,
	jwtSecret string,
	templatesGlob string,
) *Router {
	r := gin.Default()
	r.LoadHTMLGlob(templatesGlob)
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Browser surface, cookie sessions
	web := r.Group("/")
	web.Use(SessionMiddleware(sessions))
	{
		web.GET("/", pages.Home)
		web.GET("/login", pages.ShowLogin)
		web.POST("/login", pages.Login)
		web.GET("/register", pages.ShowRegister)
		web.POST("/register", pages.Register)
		web.GET("/logout", pages.Logout)
		web.GET("/add-task", pages.ShowAddTask)
		web.GET("/add-task/:id", pages.RedirectHome)
		web.POST("/add-task/:id", pages.AddTask)
		web.GET("/tasks", pages.Tasks)
		web.GET("/delete/:id", pages.DeleteTask)
	}

	// JSON surface, bearer tokens
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/register", apiHandler.Register)
		apiGroup.POST("/login", apiHandler.Login)

		authed := apiGroup.Group("/")
		authed.Use(JWTAuthMiddleware(jwtSecret))
		{
			authed.GET("/tasks", apiHandler.ListTasks)
			authed.POST("/tasks", apiHandler.CreateTask)
			authed.DELETE("/tasks/:id", apiHandler.DeleteTask)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
