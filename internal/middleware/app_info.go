package middleware

import (
	"github.com/haierkeys/document-vault-service/global"
	"github.com/haierkeys/document-vault-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo(version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", global.Name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
