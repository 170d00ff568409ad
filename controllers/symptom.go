package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) SymptomCheck(r *gin.Engine) {
	r.POST("/api/symptom-check", ctl.CheckSymptoms)
}

func (ctl *Controller) CheckSymptoms(c *gin.Context) {
	data, err := bindBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := ctl.svc.SymptomCheck(data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
