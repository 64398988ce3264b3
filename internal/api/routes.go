package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"greenhalal/backend/internal/ai"
	"greenhalal/backend/internal/certificate"
	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/metrics"
	"greenhalal/backend/internal/scoring"
	"greenhalal/backend/internal/store"
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	SilentDB       bool
	ReferencePath  string
	AllowedOrigins []string
	AIConfig       ai.Config
	DisableAI      bool
	// Explainer overrides the explainer built from AIConfig when set.
	Explainer      ai.Explainer
	ExplainTimeout time.Duration
}

// Server wires HTTP handlers with the reference table and the scoring pipeline.
type Server struct {
	db             *store.Database
	table          *enrich.Table
	explainer      ai.Explainer
	aiEnabled      bool
	allowedOrigins []string
	explainTimeout time.Duration
}

const defaultExplainTimeout = 20 * time.Second

// NewServer opens the reference store, seeds and imports reference companies, and
// freezes them into the enrichment table.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	table, err := db.Bootstrap(cfg.ReferencePath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	explainer, aiEnabled := buildExplainer(cfg)

	timeout := cfg.ExplainTimeout
	if timeout <= 0 {
		timeout = defaultExplainTimeout
	}

	return &Server{
		db:             db,
		table:          table,
		explainer:      explainer,
		aiEnabled:      aiEnabled,
		allowedOrigins: cfg.AllowedOrigins,
		explainTimeout: timeout,
	}, nil
}

func buildExplainer(cfg Config) (ai.Explainer, bool) {
	if cfg.Explainer != nil {
		return cfg.Explainer, true
	}
	if cfg.DisableAI {
		logrus.Info("AI narrative disabled via configuration, using template narratives")
		return ai.TemplateExplainer{}, false
	}
	client, err := ai.NewClient(cfg.AIConfig)
	if err != nil {
		if !errors.Is(err, ai.ErrDisabled) {
			logrus.WithError(err).Warn("ai client")
		}
		logrus.Info("AI narrative disabled - no API key configured")
		return ai.TemplateExplainer{}, false
	}
	return ai.WithFallback(client, ai.TemplateExplainer{}), true
}

// Table exposes the frozen reference table.
func (s *Server) Table() *enrich.Table {
	return s.table
}

// Close releases the reference store.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.GET("/reference", s.handleReference)
		api.POST("/evaluate", s.handleEvaluate)
		api.GET("/evaluate/stream", s.handleEvaluateStream)
		api.POST("/certificate", s.handleCertificate)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		Categories:          scoring.Categories,
		EnergySources:       scoring.EnergySources,
		WastePractices:      scoring.WastePractices,
		PackagingTypes:      scoring.PackagingTypes,
		TransportationModes: scoring.TransportationModes,
		WeightsWithEthics:   scoring.WeightsWithEthics,
		WeightsWithout:      scoring.WeightsWithoutEthics,
		ReferenceCompanies:  s.table.Len(),
		AINarrative:         s.aiEnabled,
	})
}

func (s *Server) handleReference(c *gin.Context) {
	entries := s.table.Entries()
	c.JSON(http.StatusOK, ReferenceResponse{Items: entries, Total: len(entries)})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	rec, ok := s.bindRecord(c)
	if !ok {
		return
	}
	eval, err := s.evaluate(rec, channelHTTP)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	resp := eval.response()
	if s.explainer != nil && c.Query("narrative") != "false" {
		if narrative, err := s.explain(c.Request, eval); err != nil {
			logrus.WithError(err).WithField("company", eval.Record.CompanyName).Warn("narrative unavailable")
		} else {
			resp.Narrative = &narrative
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCertificate(c *gin.Context) {
	rec, ok := s.bindRecord(c)
	if !ok {
		return
	}
	eval, err := s.evaluate(rec, channelCertificate)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	data := certificate.FromResult(eval.Record, eval.Result, eval.Reference)

	var buf bytes.Buffer
	if err := certificate.Render(&buf, data); err != nil {
		if eris.Is(err, certificate.ErrNotEligible) {
			metrics.CertificatesRefused.Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":            "certificate is only issued for an Excellent rating",
				"rating":           eval.Result.Rating,
				"greenhalal_score": eval.Result.GreenHalalScore,
			})
			return
		}
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	metrics.CertificatesIssued.Inc()
	logrus.WithFields(logrus.Fields{
		"company": data.CompanyName,
		"serial":  data.Serial,
		"score":   data.GreenHalalScore,
	}).Info("certificate issued")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", data.Filename()))
	c.Header("X-Certificate-Serial", data.Serial)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handleEvaluateStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		CheckOrigin:       s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("upgrade websocket")
		return
	}
	s.serveStream(conn)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// bindRecord decodes and validates the request body, rendering a 400 on failure.
func (s *Server) bindRecord(c *gin.Context) (scoring.Record, bool) {
	var rec scoring.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		s.renderError(c, http.StatusBadRequest, err)
		return scoring.Record{}, false
	}
	if err := rec.Validate(); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return scoring.Record{}, false
	}
	return rec, true
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
