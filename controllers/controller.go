package controllers

import (
	"CareTriage/services"
	"CareTriage/util"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	svc *services.Service
}

func New(svc *services.Service) *Controller {
	return &Controller{svc: svc}
}

func bindBody(c *gin.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		return nil, util.WrapError(util.InvalidFormat, util.UNABLE_TO_DECODE_REQUEST, err)
	}
	return data, nil
}

func fail(c *gin.Context, err error) {
	c.JSON(util.StatusCode(err), util.FailedResponse(err))
}
