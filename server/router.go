package server

import (
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	TableHandler *TableHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/codes", d.TableHandler.Codes)

		tables := v1.Group("/tables")
		{
			tables.POST("", d.TableHandler.Create)
			tables.GET("/:id", d.TableHandler.GetByID)
			tables.GET("", d.TableHandler.List)
		}
	}
}
