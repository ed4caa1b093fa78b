package api

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed swagger/catalog.swagger.json
var catalogSwagger []byte

const swaggerDocPath = "/docs/catalog.swagger.json"

// RegisterDocs serves the OpenAPI document and a Swagger UI under prefix.
func RegisterDocs(router gin.IRouter, prefix string) {
	if prefix == "" {
		prefix = "/swagger"
	}
	prefix = "/" + strings.Trim(prefix, "/")

	router.GET(swaggerDocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", catalogSwagger)
	})
	router.GET(prefix+"/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDocPath))))
}
