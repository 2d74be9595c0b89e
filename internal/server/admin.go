package server

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ishant9805/portfolio/internal/store"
)

const adminCookie = "admin_token"

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// hashIP is consistent per IP for the life of the process.
func (s *Server) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

type credentials struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (s *Server) validCredentials(creds credentials) bool {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.POST("/admin/login", func(c *gin.Context) {
		var creds credentials
		if err := c.ShouldBind(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login request"})
			return
		}

		client := s.hashIP(c.ClientIP())
		if !s.validCredentials(creds) {
			s.logger.Warn("failed admin login attempt", zap.String("client", client))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		s.logger.Info("admin login successful", zap.String("client", client))
		c.JSON(http.StatusOK, gin.H{"message": "logged in"})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.logger.Info("admin logout", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			s.logger.Error("loading admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/api/documents", func(c *gin.Context) {
		docs, err := s.store.ListDocuments(c.Request.Context(), 50)
		if err != nil {
			s.logger.Error("listing documents", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load documents"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs})
	})

	// Upload a new about-me revision. The response carries the profile the
	// site will now serve.
	admin.POST("/api/documents", func(c *gin.Context) {
		body, ok := readDocument(c)
		if !ok {
			return
		}
		doc, err := s.store.SaveDocument(c.Request.Context(), body)
		if errors.Is(err, store.ErrEmptyDocument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "document is empty"})
			return
		}
		if err != nil {
			s.logger.Error("saving document", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
			return
		}

		s.logger.Info("document uploaded",
			zap.String("id", doc.ID),
			zap.String("checksum", doc.Checksum),
			zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusCreated, gin.H{
			"document": store.DocumentInfo{ID: doc.ID, Checksum: doc.Checksum, Size: len(doc.Body), CreatedAt: doc.CreatedAt},
			"profile":  s.extractor.Extract(doc.Body),
		})
	})

	admin.POST("/api/privacy/purge", func(c *gin.Context) {
		n := s.purgeExpiredVisits(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("admin stats exported", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
