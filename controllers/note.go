package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Note(r *gin.Engine) {
	note := r.Group("/api/notes")
	{
		note.POST("", ctl.CreateNote)
		note.GET("", ctl.ListNotes)
	}
}

func (ctl *Controller) CreateNote(c *gin.Context) {
	data, err := bindBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	note, err := ctl.svc.CreateNote(c, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

/*
* patient_id is required
 */
func (ctl *Controller) ListNotes(c *gin.Context) {
	notes, err := ctl.svc.ListNotes(c, c.Query("patient_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}
