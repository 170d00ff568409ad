package routes

import (
	"CareTriage/controllers"
	"CareTriage/services"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, svc *services.Service) {
	ctl := controllers.New(svc)
	ctl.System(r)
	ctl.Patient(r)
	ctl.Appointment(r)
	ctl.Note(r)
	ctl.SymptomCheck(r)
}
