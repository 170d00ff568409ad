package controllers

import (
	"net/http"

	"CareTriage/schema"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) System(r *gin.Engine) {
	r.GET("/", ctl.Root)
	r.GET("/test", ctl.TestStore)
	r.GET("/schema", ctl.Schema)
}

func (ctl *Controller) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "CareTriage API is running"})
}

// TestStore always answers 200; store trouble shows up in the body.
func (ctl *Controller) TestStore(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.svc.Diagnose(c))
}

func (ctl *Controller) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, schema.Describe(schema.Collections...))
}
