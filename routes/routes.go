package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/JeffersonNayron/Turma-B/controllers"
	"github.com/JeffersonNayron/Turma-B/middleware"
	"github.com/JeffersonNayron/Turma-B/models"

	"github.com/gin-gonic/gin"
)

// Version is reported by /api/version.
const Version = "1.0.0"

// Controllers groups the handlers the route table needs.
type Controllers struct {
	People *controllers.PersonController
	Auth   *controllers.AuthController
}

// Options carries the deployment settings the route table depends on.
type Options struct {
	StaticDir     string
	SecureCookies bool
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers, auth middleware.Authenticator, opts Options) {
	r.Use(middleware.SessionAuth(auth, opts.SecureCookies))

	// Public routes
	r.POST("/login", ctrl.Auth.Login)
	r.POST("/logout", ctrl.Auth.Logout)
	r.GET("/session", ctrl.Auth.Session)

	r.GET("/pessoas", ctrl.People.List)
	r.GET("/pessoas/:id", ctrl.People.Get)
	r.POST("/adicionar", ctrl.People.Add)
	r.POST("/iniciar", ctrl.People.Start)
	r.POST("/editarHorario", ctrl.People.EditTime)
	r.POST("/editarLocal", ctrl.People.EditLocation)
	r.POST("/excluir", ctrl.People.Delete)
	r.POST("/limpar", ctrl.People.Reset)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/enviarMensagem", ctrl.People.SendMessage)
		admin.POST("/limparTudo", ctrl.People.Purge)
	}

	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.VersionResponse{Version: Version})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	registerStatic(r, opts.StaticDir)
}

// registerStatic serves the HTML pages when staticDir exists.
func registerStatic(r *gin.Engine, staticDir string) {
	if staticDir == "" {
		return
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return
	}

	r.Static("/static", staticDir)
	index := filepath.Join(staticDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		r.StaticFile("/", index)
	}
}
