package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Appointment(r *gin.Engine) {
	appointment := r.Group("/api/appointments")
	{
		appointment.POST("", ctl.CreateAppointment)
		appointment.GET("", ctl.ListAppointments)
	}
}

/*
* Bind JSON
* The service checks patient_id before inserting
 */
func (ctl *Controller) CreateAppointment(c *gin.Context) {
	data, err := bindBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	appointment, err := ctl.svc.CreateAppointment(c, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

/*
* patient_id and status are optional equality filters
 */
func (ctl *Controller) ListAppointments(c *gin.Context) {
	appointments, err := ctl.svc.ListAppointments(c, c.Query("patient_id"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
