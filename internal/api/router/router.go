package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/olegtsov/notify-dispatcher/internal/api/handlers/notification"
)

func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")

	api.POST("/", handler.Create)
	api.GET("/:id", handler.GetStatus)

	e.GET("/api/metrics", handler.GetMetrics)

	return e
}
