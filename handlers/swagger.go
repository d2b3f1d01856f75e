package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the dashboard service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>railpick-dashboard — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the dashboard endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "railpick-dashboard", "version": "v0.1.0" },
  "paths": {
    "/admin": {
      "get": { "summary": "Operator dashboard page (HTML + Chart.js)", "responses": { "200": { "description": "rendered dashboard" }, "503": { "description": "store unavailable" } } }
    },
    "/api/v1/dashboard": {
      "get": { "summary": "Aggregate bundle (cached up to the configured TTL)", "responses": { "200": { "description": "aggregate bundle JSON" }, "503": { "description": "store unavailable" } } }
    },
    "/api/v1/dashboard/refresh": {
      "post": { "summary": "Invalidate the bundle cache and recompute", "responses": { "200": { "description": "fresh aggregate bundle" }, "503": { "description": "store unavailable" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics exposition" } } } }
  }
}`
