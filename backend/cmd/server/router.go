package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/errors"
)

type createUserRequest struct {
	Username string   `json:"username" binding:"required"`
	Age      int      `json:"age" binding:"required,min=1"`
	Hobbies  []string `json:"hobbies"`
}

type addHobbyRequest struct {
	Hobby string `json:"hobby" binding:"required"`
}

// newRouter wires the HTTP surface over the user service
func newRouter(svc *social.UserService, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSAllowOrigin))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/users", func(c *gin.Context) {
			users, err := svc.ListUsers(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, users)
		})

		api.GET("/users/:id", func(c *gin.Context) {
			user, err := svc.GetUser(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.POST("/users", func(c *gin.Context) {
			var req createUserRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := svc.CreateUser(c.Request.Context(), req.Username, req.Age, req.Hobbies)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.PUT("/users/:id/details", func(c *gin.Context) {
			var req createUserRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := svc.UpdateDetails(c.Request.Context(), c.Param("id"), req.Username, req.Age, req.Hobbies)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.DELETE("/users/:id", func(c *gin.Context) {
			if err := svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, log, err)
				return
			}
			c.Status(http.StatusNoContent)
		})

		api.POST("/users/:id/link", func(c *gin.Context) {
			friendID := c.Query("friendId")
			if friendID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "friendId is required"})
				return
			}

			user, err := svc.LinkFriend(c.Request.Context(), c.Param("id"), friendID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.DELETE("/users/:id/unlink", func(c *gin.Context) {
			friendID := c.Query("friendId")
			if friendID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "friendId is required"})
				return
			}

			user, err := svc.UnlinkFriend(c.Request.Context(), c.Param("id"), friendID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.PATCH("/users/:id/hobbies", func(c *gin.Context) {
			var req addHobbyRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := svc.AddHobby(c.Request.Context(), c.Param("id"), req.Hobby)
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		api.GET("/hobbies", func(c *gin.Context) {
			hobbies, err := svc.ListHobbies(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, hobbies)
		})

		api.GET("/graph", func(c *gin.Context) {
			graph, err := svc.Graph(c.Request.Context())
			if err != nil {
				respondError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, graph)
		})
	}

	return router
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// corsMiddleware allows the visualization frontend to call the API
func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
