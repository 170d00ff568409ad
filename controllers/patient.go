package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Patient(r *gin.Engine) {
	patient := r.Group("/api/patients")
	{
		patient.POST("", ctl.CreatePatient)
		patient.GET("", ctl.ListPatients)
		patient.GET("/:id", ctl.FetchPatient)
	}
}

/*
* Bind JSON
* And pass to the service
 */
func (ctl *Controller) CreatePatient(c *gin.Context) {
	data, err := bindBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	patient, err := ctl.svc.CreatePatient(c, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

/*
* Optional q searches name and email
 */
func (ctl *Controller) ListPatients(c *gin.Context) {
	patients, err := ctl.svc.ListPatients(c, c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (ctl *Controller) FetchPatient(c *gin.Context) {
	patient, err := ctl.svc.GetPatient(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
